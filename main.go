package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"topsongs/app"
	"topsongs/config"
	"topsongs/database"
	"topsongs/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "topsongs",
		Usage: "Seed the songs table and serve it as a web page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   config.DefaultPath,
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Seed the database once, then serve GET /",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "Drop, recreate and seed the songs table, then exit",
				Action: seed,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal("topsongs", "err", err)
	}
}

// setup loads the config, builds the logger and opens the store.
func setup(ctx context.Context, cmd *cli.Command) (*config.Config, *log.Logger, *database.Store, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)

	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, store, nil
}

func seed(ctx context.Context, cmd *cli.Command) error {
	_, _, store, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Seed(ctx)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, store, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	// Seed before the listener opens so no request can observe a half-built table.
	if err := store.Seed(ctx); err != nil {
		return err
	}

	server := app.New(store, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr())
		errCh <- server.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
