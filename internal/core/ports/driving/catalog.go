package driving

import (
	"context"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

// CorpusStats summarises the latest build for display.
type CorpusStats struct {
	// Build is the latest recorded build.
	Build domain.BuildInfo

	// Categories is the number of article categories configured.
	Categories int
}

// CatalogService exposes corpus browsing to external actors.
type CatalogService interface {
	// GetArticle looks up one article by canonical label, e.g.
	// "Article 8". Lookup is case-insensitive on the label.
	GetArticle(ctx context.Context, label string) (*domain.Article, error)

	// ArticlesInCategory returns the catalogued articles belonging to
	// a named category.
	ArticlesInCategory(ctx context.Context, category string) ([]domain.Article, error)

	// Categories returns the configured category map.
	Categories() domain.ArticleCategories

	// Stats summarises the latest build.
	Stats(ctx context.Context) (*CorpusStats, error)
}
