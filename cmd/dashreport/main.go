// Command dashreport parses DASH driver reports into structured records.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/dashreport/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dashreport/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/dashreport/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dashreport/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/cli"
	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
	"github.com/custodia-labs/dashreport/internal/core/services"
	"github.com/custodia-labs/dashreport/internal/logger"
	"github.com/custodia-labs/dashreport/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the configured adapters into the core services.
func buildServices(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var (
		store   driven.ReportStore
		closeFn = func() error { return nil }
	)
	switch settings.Storage.Backend {
	case domain.StorageMemory:
		store = memory.NewReportStore()
	default:
		dataDir := settings.Storage.DataDir
		if dataDir == "" {
			dataDir = configDir
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening report store: %w", err)
		}
		logger.Debug("using sqlite store at %s", db.Path())
		store = db.ReportStore()
		closeFn = db.Close
	}

	return &cli.Services{
		Reports:  services.NewReportService(store, normalisers.Default(), xlsx.New()),
		Settings: settingsService,
		Close:    closeFn,
	}, nil
}
