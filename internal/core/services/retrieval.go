package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driving"
	"github.com/lexgrep/lexgrep-cli/internal/index"
	"github.com/lexgrep/lexgrep-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService serves queries against the published bundle. It
// owns one engine handle; Reload swaps the bundle atomically so
// in-flight queries see a complete bundle either way.
type RetrievalService struct {
	bundleDir string
	engine    *index.Engine
}

// NewRetrievalService loads the bundle at bundleDir and constructs the
// service. Construction fails on a missing asset or an inconsistent
// bundle; the caller owns the decision to fall back to an ungrounded
// mode.
func NewRetrievalService(bundleDir string) (*RetrievalService, error) {
	engine, err := index.NewEngineFromDir(bundleDir)
	if err != nil {
		return nil, fmt.Errorf("loading retrieval engine: %w", err)
	}
	return &RetrievalService{bundleDir: bundleDir, engine: engine}, nil
}

// Retrieve runs the query through the engine. Cancellation is
// reported as an error so callers can distinguish it from a genuine
// empty result set; any other unexpected failure is contained here,
// logged, and surfaced as an empty result list.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, opts domain.RetrievalOptions,
) (results []domain.RetrievalResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Retrieval panic contained: %v", r)
			results = []domain.RetrievalResult{}
			err = nil
		}
	}()

	results, err = s.engine.Retrieve(ctx, query, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.Warn("Retrieval error contained: %v", err)
		return []domain.RetrievalResult{}, nil
	}
	return results, nil
}

// Reload loads the bundle currently on disk and swaps it in.
func (s *RetrievalService) Reload() error {
	bundle, err := index.Load(s.bundleDir)
	if err != nil {
		return fmt.Errorf("reloading bundle: %w", err)
	}
	return s.engine.Swap(bundle)
}

// Engine exposes the underlying engine for callers that need bundle
// metadata (e.g. corpus stats).
func (s *RetrievalService) Engine() *index.Engine {
	return s.engine
}
