// Package app wires the HTTP layer: middleware, the songs route and the
// error handler.
package app

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"topsongs/handlers"
	"topsongs/middleware"
)

// New builds the fiber application serving songs on GET /.
func New(songs handlers.SongLister, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "topsongs",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(logger),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(recover.New())

	h := handlers.NewSongHandler(songs)
	app.Get("/", h.ListSongs)

	return app
}
