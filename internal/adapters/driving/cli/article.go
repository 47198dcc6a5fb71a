package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Browse catalogued articles",
	Long:  `Look up articles from the latest corpus build.`,
}

var articleGetCmd = &cobra.Command{
	Use:   "get [label]",
	Short: "Show one article by label",
	Long:  `Prints an article with its chapter/section context. The label is case-insensitive: "Article 8", "article 8" and "8" are equivalent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleGet,
}

var articleCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List article categories",
	RunE:  runArticleCategories,
}

var articleCategoryCmd = &cobra.Command{
	Use:   "category [name]",
	Short: "List the articles in a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleCategory,
}

func init() {
	articleCmd.AddCommand(articleGetCmd)
	articleCmd.AddCommand(articleCategoriesCmd)
	articleCmd.AddCommand(articleCategoryCmd)
	rootCmd.AddCommand(articleCmd)
}

func runArticleGet(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newCatalogService()
	if err != nil {
		return err
	}
	defer cleanup.Close()

	article, err := svc.GetArticle(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}

	cmd.Printf("%s", article.Label)
	if article.Title != "" {
		cmd.Printf(" - %s", article.Title)
	}
	cmd.Println()
	if article.Chapter != "" {
		cmd.Printf("  %s\n", article.Chapter)
	}
	if article.Section != "" {
		cmd.Printf("  %s\n", article.Section)
	}
	cmd.Println()
	cmd.Println(article.Text)
	return nil
}

func runArticleCategories(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := newCatalogService()
	if err != nil {
		return err
	}
	defer cleanup.Close()

	categories := svc.Categories()
	for _, name := range categories.Names() {
		labels := categories.Labels(name)
		cmd.Printf("  %-12s %d articles\n", name, len(labels))
	}
	return nil
}

func runArticleCategory(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newCatalogService()
	if err != nil {
		return err
	}
	defer cleanup.Close()

	articles, err := svc.ArticlesInCategory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list category: %w", err)
	}

	if len(articles) == 0 {
		cmd.Printf("No catalogued articles in category %q.\n", args[0])
		return nil
	}

	for i := range articles {
		cmd.Printf("  %s", articles[i].Label)
		if articles[i].Title != "" {
			cmd.Printf(" - %s", articles[i].Title)
		}
		cmd.Println()
	}
	return nil
}
