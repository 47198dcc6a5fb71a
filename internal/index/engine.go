package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/logger"
)

// cancelCheckInterval is how many rows are scored between context
// cancellation checks.
const cancelCheckInterval = 1024

// Engine answers similarity queries against a compiled bundle. The
// bundle is held behind an atomic pointer: queries never lock, and a
// rebuilt bundle can be swapped in while queries are in flight. Any
// in-flight query sees either the old bundle entirely or the new one
// entirely.
type Engine struct {
	tokenizer *Tokenizer
	bundle    atomic.Pointer[Bundle]
}

// NewEngine creates an engine serving the given bundle. The bundle is
// validated; a mismatched bundle is a fatal construction error rather
// than something to silently truncate around.
func NewEngine(bundle *Bundle) (*Engine, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: nil bundle", domain.ErrBundleMismatch)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{tokenizer: NewTokenizer()}
	e.bundle.Store(bundle)
	return e, nil
}

// NewEngineFromDir loads the bundle at dir and constructs an engine.
func NewEngineFromDir(dir string) (*Engine, error) {
	bundle, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return NewEngine(bundle)
}

// Swap atomically replaces the served bundle. The new bundle is
// validated before the pointer is updated.
func (e *Engine) Swap(bundle *Bundle) error {
	if bundle == nil {
		return fmt.Errorf("%w: nil bundle", domain.ErrBundleMismatch)
	}
	if err := bundle.Validate(); err != nil {
		return err
	}
	e.bundle.Store(bundle)
	logger.Info("Retrieval engine swapped to bundle %s", bundle.BuildID)
	return nil
}

// Bundle returns the currently served bundle.
func (e *Engine) Bundle() *Bundle {
	return e.bundle.Load()
}

// Retrieve scores the query against every chunk and returns at most
// opts.TopK results with score >= opts.MinScore, in descending score
// order. At most 2*TopK ranked candidates are examined; below-threshold
// candidates do not take a result slot but do consume examination
// budget, so sparse corpora may return fewer than TopK results even
// when qualifying chunks exist further down the ranking. That bounded
// walk is part of the contract.
//
// An empty or whitespace-only query returns an empty slice and no
// error. Ties on score are broken by row index ascending (document
// order), which is stable across identical builds.
func (e *Engine) Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	minScore := opts.MinScore
	if minScore == 0 {
		minScore = domain.DefaultMinScore
	}

	results := []domain.RetrievalResult{}
	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return results, nil
	}

	bundle := e.bundle.Load()
	queryVec := e.encode(bundle, query)
	logger.Debug("Query %q encoded to %d active dimensions", query, len(queryVec))

	// Similarity pass over every row. Rows are pre-normalised, so the
	// dot product is the cosine similarity.
	scores := make([]float64, bundle.Matrix.Rows)
	for i := range scores {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		scores[i] = bundle.Matrix.rowDot(i, queryVec)
	}

	ranked := make([]int, len(scores))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	// Bounded walk: examine at most 2*topK candidates.
	budget := 2 * topK
	if budget > len(ranked) {
		budget = len(ranked)
	}
	for _, idx := range ranked[:budget] {
		score := scores[idx]
		if score < minScore {
			continue
		}
		chunk := bundle.Chunks[idx]
		results = append(results, domain.RetrievalResult{
			ChunkID: chunk.ChunkID,
			Article: chunk.Article,
			Title:   chunk.Title,
			Chapter: chunk.Chapter,
			Section: chunk.Section,
			Text:    chunk.Text,
			Score:   score,
		})
		if len(results) >= topK {
			break
		}
	}

	logger.Debug("Retrieved %d results (top_k=%d, min_score=%.2f)", len(results), topK, minScore)
	return results, nil
}

// encode projects the query into the bundle's fixed vector space.
// Terms absent from the vocabulary contribute nothing; the vocabulary
// never grows at query time. The result is L2-normalised.
func (e *Engine) encode(bundle *Bundle, query string) map[int]float64 {
	counts := make(map[int]int)
	for _, term := range e.tokenizer.Terms(query) {
		if dim, ok := bundle.Vocabulary[term]; ok {
			counts[dim]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(map[int]float64, len(counts))
	var norm float64
	for dim, count := range counts {
		w := float64(count) * bundle.IDF[dim]
		vec[dim] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for dim := range vec {
			vec[dim] /= norm
		}
	}
	return vec
}
