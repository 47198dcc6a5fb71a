package driven

import (
	"context"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

// CatalogStore persists completed builds with their articles and
// chunks so the CLI can browse the corpus without reloading the index
// bundle.
type CatalogStore interface {
	// SaveBuild records one completed build and its full corpus.
	// A later build replaces the previous catalog content.
	SaveBuild(ctx context.Context, info domain.BuildInfo, articles []domain.Article, chunks []domain.Chunk) error

	// LatestBuild returns the most recent build, or domain.ErrNotFound
	// when no build has been recorded.
	LatestBuild(ctx context.Context) (*domain.BuildInfo, error)

	// GetArticle returns the article with the given canonical label,
	// or domain.ErrNotFound.
	GetArticle(ctx context.Context, label string) (*domain.Article, error)

	// ListArticles returns all articles of the latest build in
	// document order.
	ListArticles(ctx context.Context) ([]domain.Article, error)

	// ChunksByArticle returns the chunks derived from one article in
	// split order.
	ChunksByArticle(ctx context.Context, label string) ([]domain.Chunk, error)

	// Close releases the underlying storage.
	Close() error
}
