package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the built corpus",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the latest build",
	RunE:  runCorpusStats,
}

func init() {
	corpusCmd.AddCommand(corpusStatsCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusStats(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := newCatalogService()
	if err != nil {
		return err
	}
	defer cleanup.Close()

	stats, err := svc.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get corpus stats: %w", err)
	}

	cmd.Printf("Latest build: %s\n\n", stats.Build.ID)
	cmd.Printf("  Source:      %s\n", stats.Build.Source)
	cmd.Printf("  Built at:    %s\n", stats.Build.CreatedAt)
	cmd.Printf("  Articles:    %d\n", stats.Build.ArticleCount)
	cmd.Printf("  Chunks:      %d\n", stats.Build.ChunkCount)
	cmd.Printf("  Vocabulary:  %d terms\n", stats.Build.VocabularySize)
	cmd.Printf("  Categories:  %d\n", stats.Categories)
	return nil
}
