package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/mangaland/internal/adapter"
	"github.com/mmcdole/mangaland/internal/history"
	"github.com/mmcdole/mangaland/internal/mangadex"
	"github.com/mmcdole/mangaland/internal/service"
	"github.com/mmcdole/mangaland/internal/store"
)

// app holds the wired services shared by the TUI and the plain commands
type app struct {
	cfg    *adapter.Config
	logger *slog.Logger

	catalog *service.CatalogService
	reader  *service.ReaderService
	history *service.HistoryService

	closers []io.Closer
}

func newApp(configDir string) (*app, error) {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		a.closers = append(a.closers, closer)
	}
	slog.SetDefault(logger)
	a.logger = logger

	kv, err := store.NewStore(cfg.Storage.DataDir, cfg.API.BaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	a.closers = append(a.closers, kv)

	client := mangadex.NewClient(cfg.API.BaseURL, cfg.API.UploadsURL, cfg.API.Timeout, logger)
	visits := history.NewStore(kv, history.WithLogger(logger))

	// Create launcher (uses configured viewer or auto-detects)
	launcher := adapter.NewLauncher(cfg.Reader.Command, cfg.Reader.Args, logger)

	// Create services
	a.catalog = service.NewCatalogService(client, cfg.API.Language, logger)
	a.reader = service.NewReaderService(client, a.catalog, visits, launcher, cfg.Reader.DataSaver, logger)
	a.history = service.NewHistoryService(visits, client, logger)

	return a, nil
}

// Close releases the store and the log file, newest first
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
