package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lexgrep/lexgrep-cli/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source]",
	Short: "Rebuild the corpus whenever the source document changes",
	Long: `Performs an initial build, then watches the source document and
rebuilds on every change. The new index bundle is swapped in atomically;
a failed rebuild keeps the previous bundle serving.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	source := args[0]

	buildSvc, cleanup, err := newBuildService(0)
	if err != nil {
		return err
	}
	defer cleanup.Close()

	// Initial build so the watcher always starts from a served bundle.
	info, err := buildSvc.Build(cmd.Context(), source)
	if err != nil {
		return err
	}
	cmd.Printf("Initial build %s: %d chunks.\n", info.ID, info.ChunkCount)

	retrievalSvc, err := newRetrievalService()
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)...\n", source)
	watcher := services.NewWatcher(source, buildSvc, retrievalSvc)
	if err := watcher.Watch(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
