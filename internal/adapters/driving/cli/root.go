// Package cli implements the lexgrep command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lexgrep/lexgrep-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lexgrep",
	Short: "Build and query a statutory retrieval corpus",
	Long: `Lexgrep grounds free-text legal queries in a structured statutory corpus.

It parses a source document into articles, splits them into retrieval
chunks, compiles a TF-IDF index and answers similarity queries against
it - a deterministic, explainable lexical retrieval engine.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default from config, else ~/.lexgrep/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, so
// long-running commands like watch stop on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
