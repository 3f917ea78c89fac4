package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/campsync-cli/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync [source-id]",
	Short: "Ingest documents from sources",
	Long: `Triggers document ingestion from configured sources.
If a source ID is provided, only that source is ingested.
Otherwise, all sources are ingested.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if services == nil || services.Ingest == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		sourceID := args[0]
		cmd.Printf("Ingesting source: %s...\n", sourceID)

		if err := syncWithProgress(ctx, cmd, services.Ingest, sourceID); err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}

		cmd.Printf("Source %s ingested successfully.\n", sourceID)
		return nil
	}

	cmd.Println("Ingesting all sources...")
	if err := services.Ingest.RunAll(ctx); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	cmd.Println("All sources ingested successfully.")
	return nil
}

// syncWithProgress runs one ingestion while displaying progress updates.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	ingest driving.IngestOrchestrator,
	sourceID string,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- ingest.Run(ctx, sourceID)
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			// Final status is best effort
			if status, statusErr := ingest.Status(ctx, sourceID); statusErr == nil && status.Documents > 0 {
				cmd.Printf("Enqueued %d documents (%d errors).\n", status.Documents, status.Errors)
			}
			return err

		case <-ticker.C:
			status, statusErr := ingest.Status(ctx, sourceID)
			if statusErr != nil {
				continue
			}
			if status.Documents != lastCount {
				cmd.Printf("Enqueued %d documents...\n", status.Documents)
				lastCount = status.Documents
			}
		}
	}
}
