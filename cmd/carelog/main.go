// Command carelog runs maintenance tasks against the care log journal:
// seeding sample history, previewing advice, checking the store schema and
// testing Langfuse connectivity.
package main

import (
	"os"

	"github.com/blaisecz/care-log/internal/config"
	"github.com/spf13/cobra"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carelog",
		Short:         "Self-care journal maintenance tool",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg == nil {
				cfg = config.Load()
			}
		},
	}
	root.AddCommand(
		newSeedCmd(),
		newAdviceCmd(),
		newCheckSchemaCmd(),
		newTraceTestCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
