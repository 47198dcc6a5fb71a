package cli

import (
	"context"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driving"
)

// stubRetrievalService records the last query and returns canned results.
type stubRetrievalService struct {
	results   []domain.RetrievalResult
	err       error
	lastQuery string
	lastOpts  domain.RetrievalOptions
}

func (s *stubRetrievalService) Retrieve(_ context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error) {
	s.lastQuery = query
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubRetrievalService) Reload() error { return nil }

// stubBuildService records the last source and returns canned build info.
type stubBuildService struct {
	info       *domain.BuildInfo
	err        error
	lastSource string
}

func (s *stubBuildService) Build(_ context.Context, source string) (*domain.BuildInfo, error) {
	s.lastSource = source
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

// stubCatalogService serves a fixed corpus snapshot.
type stubCatalogService struct {
	article    *domain.Article
	articles   []domain.Article
	stats      *driving.CorpusStats
	categories domain.ArticleCategories
	err        error
}

func (s *stubCatalogService) GetArticle(context.Context, string) (*domain.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.article, nil
}

func (s *stubCatalogService) ArticlesInCategory(context.Context, string) ([]domain.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

func (s *stubCatalogService) Categories() domain.ArticleCategories {
	return s.categories
}

func (s *stubCatalogService) Stats(context.Context) (*driving.CorpusStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

// testServices holds the stubs installed by setupTestServices.
type testServices struct {
	retrieval *stubRetrievalService
	build     *stubBuildService
	catalog   *stubCatalogService
}

// setupTestServices swaps the construction hooks for stubs and resets
// the command flags. The returned cleanup restores production wiring.
func setupTestServices() (*testServices, func()) {
	stubs := &testServices{
		retrieval: &stubRetrievalService{
			results: []domain.RetrievalResult{
				{
					ChunkID: "article_17_p1",
					Article: "Article 17",
					Title:   "Right to erasure",
					Chapter: "CHAPTER III - Rights of the data subject",
					Text:    "1. The data subject shall have the right to obtain erasure.",
					Score:   0.82,
				},
			},
		},
		build: &stubBuildService{
			info: &domain.BuildInfo{
				ID:             "build-1",
				Source:         "gdpr.txt",
				ArticleCount:   3,
				ChunkCount:     5,
				VocabularySize: 42,
				CreatedAt:      "2026-08-25T10:00:00Z",
			},
		},
		catalog: &stubCatalogService{
			article: &domain.Article{
				Label:   "Article 17",
				Title:   "Right to erasure",
				Chapter: "CHAPTER III - Rights of the data subject",
				Text:    "1. The data subject shall have the right to obtain erasure.",
			},
			articles: []domain.Article{
				{Label: "Article 17", Title: "Right to erasure"},
			},
			stats: &driving.CorpusStats{
				Build: domain.BuildInfo{
					ID:             "build-1",
					Source:         "gdpr.txt",
					ArticleCount:   3,
					ChunkCount:     5,
					VocabularySize: 42,
					CreatedAt:      "2026-08-25T10:00:00Z",
				},
				Categories: 9,
			},
			categories: domain.DefaultArticleCategories(),
		},
	}

	oldBuild := newBuildService
	oldRetrieval := newRetrievalService
	oldCatalog := newCatalogService

	newBuildService = func(float64) (driving.BuildService, closerFunc, error) {
		return stubs.build, nil, nil
	}
	newRetrievalService = func() (driving.RetrievalService, error) {
		return stubs.retrieval, nil
	}
	newCatalogService = func() (driving.CatalogService, closerFunc, error) {
		return stubs.catalog, nil, nil
	}

	searchTopK = 0
	searchMinScore = 0
	searchJSON = false
	buildMaxDF = 0

	cleanup := func() {
		newBuildService = oldBuild
		newRetrievalService = oldRetrieval
		newCatalogService = oldCatalog
	}
	return stubs, cleanup
}
