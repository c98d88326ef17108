package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"minitodo/internal/config"
	"minitodo/internal/logging"
	"minitodo/internal/storage"
	"minitodo/internal/todo"
	"minitodo/internal/ui"
)

func main() {
	os.Exit(run())
}

type loader interface {
	Load() ([]todo.Todo, error)
	Path() string
}

// loadSession reads the saved list. A corrupt file starts an empty session
// that is saved over on exit. Any other read failure also starts empty but
// turns off the exit save so the unread file is left alone.
func loadSession(file loader, logger *log.Logger) (records []todo.Todo, status string, persist bool) {
	records, err := file.Load()
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		logger.Warn("data file corrupt, starting empty", "path", file.Path(), "err", err)
		return nil, "Data file was unreadable; starting with an empty list", true
	case err != nil:
		logger.Error("load failed, changes will not be saved", "path", file.Path(), "err", err)
		return nil, "Could not read data file; changes will not be saved", false
	}
	logger.Info("loaded todos", "count", len(records), "path", file.Path())
	return records, "", true
}

func run() int {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		return 1
	}

	logger, closer, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		return 1
	}
	defer closer.Close()

	file, err := storage.Open(cfg.DataPath)
	if err != nil {
		fmt.Printf("failed to open data file: %v\n", err)
		return 1
	}

	records, status, persist := loadSession(file, logger)
	store := todo.NewStore(records)
	runErr := ui.Run(ui.Params{Store: store, Config: cfg, Logger: logger, Status: status})

	if persist {
		if err := file.Save(store.Todos()); err != nil {
			logger.Error("save failed", "path", file.Path(), "err", err)
		} else {
			logger.Info("saved todos", "count", store.Len(), "path", file.Path())
		}
	}

	if runErr != nil {
		fmt.Printf("error running program: %v\n", runErr)
		return 1
	}
	return 0
}
