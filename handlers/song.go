package handlers

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"

	"topsongs/models"
)

//go:embed templates/songs.html
var templateFS embed.FS

var songsPage = template.Must(
	template.New("songs.html").
		Funcs(template.FuncMap{"comma": humanize.Comma}).
		ParseFS(templateFS, "templates/songs.html"),
)

// SongLister is implemented by database.Store.
type SongLister interface {
	Songs(ctx context.Context) ([]models.Song, error)
}

// SongHandler renders the songs page.
type SongHandler struct {
	songs SongLister
}

// NewSongHandler returns a handler reading songs from songs.
func NewSongHandler(songs SongLister) *SongHandler {
	return &SongHandler{songs: songs}
}

// ListSongs renders every song as a card.
func (h *SongHandler) ListSongs(c *fiber.Ctx) error {
	songs, err := h.songs.Songs(c.UserContext())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := songsPage.Execute(&buf, struct{ Songs []models.Song }{songs}); err != nil {
		return fmt.Errorf("render songs page: %w", err)
	}

	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
