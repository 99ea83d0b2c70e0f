// Package cli exposes the command surface: record sales, inspect
// inventory, and generate summaries.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
	"github.com/javoxirone/coffee-sales-management/internal/repository/csvstore"
	"github.com/javoxirone/coffee-sales-management/internal/service/reporting"
	"github.com/javoxirone/coffee-sales-management/internal/service/sales"
	"github.com/javoxirone/coffee-sales-management/pkg/logger"
)

// App wires configuration, stores and services behind the command tree.
type App struct {
	cfg            *config.Config
	logger         *zap.Logger
	salesStore     csvstore.SalesStore
	inventoryStore csvstore.InventoryStore
	sales          *sales.Service
	reports        *reporting.Service
	out            io.Writer
}

// New builds the application with its stores and services.
func New(cfg *config.Config, baseLogger *zap.Logger, out io.Writer) *App {
	if baseLogger == nil {
		baseLogger = zap.NewNop()
	}

	salesStore := csvstore.NewSalesStore(cfg.Storage.SalesPath(), cfg.CSV, logger.Named(baseLogger, "store.sales"))
	inventoryStore := csvstore.NewInventoryStore(cfg.Storage.InventoryPath(), logger.Named(baseLogger, "store.inventory"))

	return &App{
		cfg:            cfg,
		logger:         baseLogger,
		salesStore:     salesStore,
		inventoryStore: inventoryStore,
		sales:          sales.NewService(salesStore, inventoryStore, logger.Named(baseLogger, "svc.sales")),
		reports:        reporting.NewService(logger.Named(baseLogger, "svc.reporting")),
		out:            out,
	}
}

// Root returns the fully assembled command tree.
func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "coffeesales",
		Short:         "Record coffee sales, track inventory, and summarize revenue from CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.sellCommand(),
		a.inventoryCommand(),
		a.reportCommand(),
		a.statsCommand(),
		a.listCommand(),
		a.importCommand(),
		a.initCommand(),
		a.watchCommand(),
	)
	return root
}

// parseDate accepts the configured layout first and falls back to
// free-form parsing for convenience input like "Jan 2 2024".
func (a *App) parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(a.cfg.CSV.DateLayout, value); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", value, models.ErrValidation)
	}
	return t, nil
}
