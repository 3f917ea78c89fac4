// Package cli implements the cobra command tree for Campsync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/campsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/campsync-cli/internal/logger"
)

// Services groups the driving ports the CLI commands use.
type Services struct {
	Sources   driving.SourceService
	Ingest    driving.IngestOrchestrator
	Scheduler driving.Scheduler
	Logger    *logger.Logger
}

var (
	services *Services
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "campsync",
	Short: "Ingest Basecamp projects into a local index queue",
	Long: `Campsync pulls projects, to-dos and their comment threads from a
Basecamp account and enqueues them as normalised documents for indexing.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose && services != nil && services.Logger != nil {
			services.Logger.SetVerbose(true)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// SetServices wires the core services into the command tree.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
