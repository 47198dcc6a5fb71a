package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

var (
	searchTopK     int
	searchMinScore float64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus for relevant passages",
	Long: `Scores the query against every indexed chunk by cosine similarity
and prints the top passages with their article context.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of results (0 = configured default)")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "minimum similarity score (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := newRetrievalService()
	if err != nil {
		if errors.Is(err, domain.ErrMissingAsset) {
			return fmt.Errorf("%w: run 'lexgrep build' first", domain.ErrEngineUnavailable)
		}
		return fmt.Errorf("search unavailable: %w", err)
	}

	topK, minScore := searchDefaults()
	if searchTopK > 0 {
		topK = searchTopK
	}
	if searchMinScore > 0 {
		minScore = searchMinScore
	}

	results, err := svc.Retrieve(cmd.Context(), args[0], domain.RetrievalOptions{
		TopK:     topK,
		MinScore: minScore,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievalResult) error {
	if len(results) == 0 {
		cmd.Println("No direct passages found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]

		heading := r.Article
		if r.Title != "" {
			heading += " - " + r.Title
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, heading, r.Score)
		if r.Chapter != "" {
			cmd.Printf("      %s\n", r.Chapter)
		}
		if r.Section != "" {
			cmd.Printf("      %s\n", r.Section)
		}

		snippet := r.Text
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}
		cmd.Printf("      %s\n", snippet)
		cmd.Println()
	}
	return nil
}
