package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/cli"
	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
	"github.com/javoxirone/coffee-sales-management/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	baseLogger := logger.Must(logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	app := cli.New(cfg, baseLogger, os.Stdout)
	if err := app.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes rejected input (2) from operational failures (1).
func exitCode(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrInsufficientStock):
		return 2
	default:
		return 1
	}
}
