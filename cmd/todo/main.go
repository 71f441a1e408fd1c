package main

import (
	"errors"
	"fmt"
	"os"

	"tagdo/internal/config"
	"tagdo/internal/logging"
	"tagdo/internal/storage"
	"tagdo/internal/todo"
	"tagdo/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := logging.Open(logging.Options{
		Path:            cfg.LogFile,
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
	})
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	backend, err := storage.Open(cfg.Storage, cfg.DBPath, cfg.DataDir)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()
	logger.Info("storage opened", "kind", cfg.Storage, "config", configPath)

	ctrl := todo.New(storage.NewTaskStore(backend), todo.Options{
		Tags:       cfg.Tags,
		DefaultTag: cfg.DefaultTag,
		Filter:     cfg.DefaultFilter,
		Logger:     logger,
	})

	if err := ui.Run(ctrl, cfg, configPath, firstLaunch, logger); err != nil {
		logger.Error("program failed", "err", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
