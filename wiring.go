package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/CrestNiraj12/chantv/app"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/infra/blob"
	"github.com/CrestNiraj12/chantv/infra/board"
	"github.com/CrestNiraj12/chantv/infra/config"
	"github.com/CrestNiraj12/chantv/infra/launcher"
	"github.com/CrestNiraj12/chantv/infra/logging"
	"github.com/CrestNiraj12/chantv/store"
	"github.com/CrestNiraj12/chantv/tui"
)

// environment is everything a command needs, built from configuration.
type environment struct {
	cfg        config.Config
	logger     *slog.Logger
	service    *board.ThreadService
	favourites *store.Favourites
	hidden     *store.HiddenThreads
	positions  *store.ThreadPositions
	closers    []io.Closer
}

func setup(ctx context.Context, v *viper.Viper) (*environment, error) {
	// 1. Load config from flags, environment and config file.
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	env := &environment{cfg: cfg}

	logger, logFile, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	env.logger = logger
	env.closers = append(env.closers, logFile)

	// 2. Build infrastructure.
	storage, closer, err := openStorage(ctx, cfg)
	if err != nil {
		env.Close()
		return nil, err
	}
	if closer != nil {
		env.closers = append(env.closers, closer)
	}

	client := board.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, board.DefaultLimiter())
	env.service = board.NewThreadService(client, board.Options{
		Board:       cfg.Board,
		SiteURL:     cfg.SiteURL,
		MediaURL:    cfg.MediaBaseURL,
		EnrichLimit: cfg.EnrichLimit,
		Logger:      logger,
	})

	// 3. Load the persistent stores.
	opts := store.Options{Logger: logger}
	env.favourites = store.NewFavourites(opts)
	env.hidden = store.NewHiddenThreads(opts)
	env.positions = store.NewThreadPositions(opts)
	env.favourites.Initialize(storage)
	env.hidden.Initialize(storage)
	env.positions.Initialize(storage)

	logger.Info("started", "board", cfg.Board, "storage", cfg.Storage, "version", version)
	return env, nil
}

func openStorage(ctx context.Context, cfg config.Config) (app.BlobStorage, io.Closer, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		s, err := blob.OpenSQLite(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := blob.NewFileStorage(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
}

// Close releases storage and the log file, newest first.
func (e *environment) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

func (e *environment) feedConfig() feed.Config {
	return feed.Config{
		PageSize:      e.cfg.PageSize,
		AutoLoadDelay: e.cfg.AutoLoadDelay,
		SessionTTL:    e.cfg.SessionTTL,
		Logger:        e.logger,
	}
}

func (e *environment) tuiDeps() tui.Deps {
	return tui.Deps{
		Source:     e.service,
		Linker:     e.service,
		Favourites: e.favourites,
		Hidden:     e.hidden,
		Positions:  e.positions,
		Launcher:   launcher.New(e.cfg.Player),
		Feed:       e.feedConfig(),
		Board:      e.cfg.Board,
	}
}
