package cmd

import (
	"github.com/solarium-dev/solarium/logging"
	"github.com/spf13/cobra"
)

// cmdLogger describes the logger used by all CLI commands.
var cmdLogger = logging.GlobalLogger.NewSubLogger("module", "cli")

var rootCmd = &cobra.Command{
	Use:   "solarium",
	Short: "A smart contract build artifact normalizer",
	Long:  "solarium compiles smart contract projects and normalizes their build artifacts into a single model",
}

func Execute() error {
	return rootCmd.Execute()
}
