package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driven"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driving"
	"github.com/lexgrep/lexgrep-cli/internal/index"
	"github.com/lexgrep/lexgrep-cli/internal/logger"
	"github.com/lexgrep/lexgrep-cli/internal/segmenter"
)

// Corpus artifact names within the data directory.
const (
	ArticlesFile = "articles.json"
	ChunksFile   = "chunks.jsonl"
	BundleDir    = "index"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// BuildService runs the offline pipeline: extract -> segment -> chunk
// -> index -> publish. One build is a single batch pass; the published
// bundle is immutable.
type BuildService struct {
	dataDir    string
	extractors map[string]driven.Extractor
	fallback   driven.Extractor
	segmenter  *segmenter.Segmenter
	splitter   *segmenter.Splitter
	builder    *index.Builder
	catalog    driven.CatalogStore
}

// NewBuildService creates a build service writing artifacts under
// dataDir. Extractors are selected by lowercased file extension;
// fallback handles everything else. The catalog is optional.
func NewBuildService(
	dataDir string,
	builder *index.Builder,
	extractors map[string]driven.Extractor,
	fallback driven.Extractor,
	catalog driven.CatalogStore,
) *BuildService {
	return &BuildService{
		dataDir:    dataDir,
		extractors: extractors,
		fallback:   fallback,
		segmenter:  segmenter.New(),
		splitter:   segmenter.NewSplitter(),
		builder:    builder,
		catalog:    catalog,
	}
}

// BundlePath returns the directory the index bundle is published to.
func (s *BuildService) BundlePath() string {
	return filepath.Join(s.dataDir, BundleDir)
}

// Build runs the full pipeline for one source document. On any error
// the previously published artifacts are left untouched.
func (s *BuildService) Build(ctx context.Context, sourcePath string) (*domain.BuildInfo, error) {
	logger.Section("Corpus Build")
	logger.Info("Source: %s", sourcePath)

	raw, err := s.extract(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", sourcePath, err)
	}

	articles := s.segmenter.Segment(raw)
	logger.Info("Segmented %d articles", len(articles))

	chunks := s.splitter.SplitAll(articles)
	logger.Info("Split into %d chunks", len(chunks))

	bundle, err := s.builder.Build(chunks)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	if err := s.publish(bundle, articles, chunks); err != nil {
		return nil, err
	}

	info := &domain.BuildInfo{
		ID:             bundle.BuildID,
		Source:         sourcePath,
		ArticleCount:   len(articles),
		ChunkCount:     len(chunks),
		VocabularySize: bundle.Matrix.NumCols,
		CreatedAt:      bundle.CreatedAt.Format(time.RFC3339),
	}

	if s.catalog != nil {
		if err := s.catalog.SaveBuild(ctx, *info, articles, chunks); err != nil {
			return nil, fmt.Errorf("recording build in catalog: %w", err)
		}
	}

	logger.Info("Build %s complete", info.ID)
	return info, nil
}

// extract picks the extractor for the source file extension.
func (s *BuildService) extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if extractor, ok := s.extractors[ext]; ok {
		logger.Debug("Using %s extractor", ext)
		return extractor.Extract(ctx, path)
	}
	if s.fallback == nil {
		return "", fmt.Errorf("%w: no extractor for %q", domain.ErrInvalidInput, ext)
	}
	return s.fallback.Extract(ctx, path)
}

// publish writes the bundle and corpus artifacts. The bundle publish
// is atomic; the JSON artifacts are staged and renamed afterwards so a
// failed build never overwrites a good artifact with a partial one.
func (s *BuildService) publish(bundle *index.Bundle, articles []domain.Article, chunks []domain.Chunk) error {
	if err := os.MkdirAll(s.dataDir, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	articlesTmp, err := stageArticles(s.dataDir, articles)
	if err != nil {
		return fmt.Errorf("staging articles: %w", err)
	}
	chunksTmp, err := stageChunks(s.dataDir, chunks)
	if err != nil {
		os.Remove(articlesTmp)
		return fmt.Errorf("staging chunks: %w", err)
	}

	if err := bundle.Save(s.BundlePath()); err != nil {
		os.Remove(articlesTmp)
		os.Remove(chunksTmp)
		return fmt.Errorf("publishing bundle: %w", err)
	}

	if err := os.Rename(articlesTmp, filepath.Join(s.dataDir, ArticlesFile)); err != nil {
		return fmt.Errorf("publishing articles: %w", err)
	}
	if err := os.Rename(chunksTmp, filepath.Join(s.dataDir, ChunksFile)); err != nil {
		return fmt.Errorf("publishing chunks: %w", err)
	}
	return nil
}

// stageArticles writes the article list to a temporary file and
// returns its path.
func stageArticles(dir string, articles []domain.Article) (string, error) {
	if articles == nil {
		articles = []domain.Article{}
	}
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return "", err
	}
	return stageFile(dir, ".articles-*", data)
}

// stageChunks writes the chunk list as JSON Lines, one record per line.
func stageChunks(dir string, chunks []domain.Chunk) (string, error) {
	var sb strings.Builder
	for _, chunk := range chunks {
		line, err := json.Marshal(chunk)
		if err != nil {
			return "", err
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return stageFile(dir, ".chunks-*", []byte(sb.String()))
}

func stageFile(dir, pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
