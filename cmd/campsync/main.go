package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/campsync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/campsync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/campsync-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/campsync-cli/internal/connectors/basecamp"
	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/core/services"
	"github.com/custodia-labs/campsync-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New(os.Stderr, false)

	settingsStore, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	unitTimeout, err := settings.ParsedUnitTimeout()
	if err != nil {
		return err
	}
	syncInterval, err := settings.ParsedSyncInterval()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	factory := services.NewConnectorFactory()
	factory.Register("basecamp", basecamp.Build)

	sourceStore := store.SourceStore()
	schedulerStore := store.SchedulerStore()

	ingest := services.NewIngestOrchestrator(
		sourceStore,
		factory,
		store.SinkQueue(),
		schedulerStore,
		log,
		settings.Workers,
		unitTimeout,
	)

	scheduler := services.NewScheduler(
		domain.SchedulerConfig{
			Enabled:  settings.SchedulerEnabled,
			Interval: syncInterval,
		},
		schedulerStore,
		ingest,
		log,
	)

	cli.SetServices(&cli.Services{
		Sources:   services.NewSourceService(sourceStore, factory, log),
		Ingest:    ingest,
		Scheduler: scheduler,
		Logger:    log,
	})

	return cli.Execute()
}
