package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driven"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService answers corpus browsing requests from the catalog
// store. The category map is an immutable value provided at
// construction.
type CatalogService struct {
	catalog    driven.CatalogStore
	categories domain.ArticleCategories
}

// NewCatalogService creates a catalog service.
func NewCatalogService(catalog driven.CatalogStore, categories domain.ArticleCategories) *CatalogService {
	return &CatalogService{catalog: catalog, categories: categories}
}

// GetArticle looks up one article. The label is canonicalised first,
// so "article 8" and "8" both resolve to "Article 8". A miss against a
// corpus with no articles reports the empty corpus rather than a plain
// not-found, so the caller can suggest building first.
func (s *CatalogService) GetArticle(ctx context.Context, label string) (*domain.Article, error) {
	canonical := CanonicalArticleLabel(label)
	if canonical == "" {
		return nil, fmt.Errorf("%w: empty article label", domain.ErrInvalidInput)
	}

	article, err := s.catalog.GetArticle(ctx, canonical)
	if errors.Is(err, domain.ErrNotFound) {
		if build, berr := s.catalog.LatestBuild(ctx); berr != nil || build.ArticleCount == 0 {
			return nil, fmt.Errorf("%w: no articles catalogued", domain.ErrEmptyCorpus)
		}
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// ArticlesInCategory returns the catalogued articles for a category.
// Labels configured but absent from the corpus are skipped.
func (s *CatalogService) ArticlesInCategory(ctx context.Context, category string) ([]domain.Article, error) {
	labels := s.categories.Labels(strings.ToLower(strings.TrimSpace(category)))
	if labels == nil {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrNotFound, category)
	}

	articles := make([]domain.Article, 0, len(labels))
	for _, label := range labels {
		article, err := s.catalog.GetArticle(ctx, label)
		if err != nil {
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// Categories returns the configured category map.
func (s *CatalogService) Categories() domain.ArticleCategories {
	return s.categories
}

// Stats summarises the latest recorded build.
func (s *CatalogService) Stats(ctx context.Context) (*driving.CorpusStats, error) {
	build, err := s.catalog.LatestBuild(ctx)
	if err != nil {
		return nil, err
	}
	return &driving.CorpusStats{
		Build:      *build,
		Categories: len(s.categories),
	}, nil
}

// CanonicalArticleLabel normalises user input to the corpus label
// form, e.g. "article 8a" -> "Article 8A" and "8" -> "Article 8".
func CanonicalArticleLabel(input string) string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ""
	}
	if strings.EqualFold(fields[0], "article") {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return ""
	}
	return "Article " + strings.ToUpper(strings.Join(fields, " "))
}
