package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildMaxDF float64

var buildCmd = &cobra.Command{
	Use:   "build [source]",
	Short: "Build the corpus and retrieval index from a source document",
	Long: `Extracts text from the source document (.pdf or plain text),
segments it into articles, splits them into retrieval chunks and
compiles the TF-IDF index bundle. Artifacts are published atomically;
a failed build leaves any previous build untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Float64Var(&buildMaxDF, "max-df", 0, "maximum document-frequency ratio for vocabulary terms (0 = configured default)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newBuildService(buildMaxDF)
	if err != nil {
		return err
	}
	defer cleanup.Close()

	info, err := svc.Build(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Build %s complete.\n\n", info.ID)
	cmd.Printf("  Source:      %s\n", info.Source)
	cmd.Printf("  Articles:    %d\n", info.ArticleCount)
	cmd.Printf("  Chunks:      %d\n", info.ChunkCount)
	cmd.Printf("  Vocabulary:  %d terms\n", info.VocabularySize)
	return nil
}
