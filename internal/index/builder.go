package index

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/logger"
)

// DefaultMaxDF is the default maximum document-frequency ratio. Terms
// present in more than this share of chunks are near-universal and
// carry no discriminative weight.
const DefaultMaxDF = 0.95

// DefaultMinDF is the default minimum document frequency.
const DefaultMinDF = 1

// Builder compiles a chunk collection into an index bundle.
type Builder struct {
	tokenizer *Tokenizer
	minDF     int
	maxDF     float64
}

// Option configures the builder.
type Option func(*Builder)

// WithMinDF sets the minimum document frequency for vocabulary terms.
func WithMinDF(minDF int) Option {
	return func(b *Builder) {
		if minDF > 0 {
			b.minDF = minDF
		}
	}
}

// WithMaxDF sets the maximum document-frequency ratio in (0,1].
func WithMaxDF(maxDF float64) Option {
	return func(b *Builder) {
		if maxDF > 0 && maxDF <= 1 {
			b.maxDF = maxDF
		}
	}
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		tokenizer: NewTokenizer(),
		minDF:     DefaultMinDF,
		maxDF:     DefaultMaxDF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build compiles the full ordered chunk collection into one bundle.
// Row i of the matrix is the vector for chunks[i]; this positional
// alignment is preserved through persistence and load. Zero chunks
// still produce a valid empty bundle.
func (b *Builder) Build(chunks []domain.Chunk) (*Bundle, error) {
	logger.Section("Index Build")
	logger.Debug("Chunks: %d, min_df=%d, max_df=%.2f", len(chunks), b.minDF, b.maxDF)

	// First pass: per-chunk term counts and corpus document frequencies.
	counts := make([]map[string]int, len(chunks))
	df := make(map[string]int)
	for i, chunk := range chunks {
		tf := make(map[string]int)
		for _, term := range b.tokenizer.Terms(chunk.Text) {
			tf[term]++
		}
		counts[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	// Prune the vocabulary and fix the dimension order. Terms are
	// sorted so that identical input always yields identical dimensions.
	n := len(chunks)
	maxDocs := int(math.Floor(b.maxDF * float64(n)))
	terms := make([]string, 0, len(df))
	for term, freq := range df {
		if freq < b.minDF || freq > maxDocs {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for dim, term := range terms {
		vocabulary[term] = dim
		// Smoothed inverse document frequency.
		idf[dim] = math.Log((1+float64(n))/(1+float64(df[term]))) + 1
	}
	logger.Debug("Vocabulary: %d terms (pruned from %d candidates)", len(terms), len(df))

	// Second pass: TF-IDF rows, L2-normalised.
	matrix := newMatrix(len(terms))
	rowCols := make([]int, 0, 64)
	rowVals := make([]float64, 0, 64)
	for _, tf := range counts {
		rowCols = rowCols[:0]
		for term := range tf {
			if dim, ok := vocabulary[term]; ok {
				rowCols = append(rowCols, dim)
			}
		}
		sort.Ints(rowCols)

		rowVals = rowVals[:0]
		var norm float64
		for _, dim := range rowCols {
			w := float64(tf[terms[dim]]) * idf[dim]
			rowVals = append(rowVals, w)
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range rowVals {
				rowVals[k] /= norm
			}
		}
		matrix.appendRow(rowCols, rowVals)
	}

	bundle := &Bundle{
		BuildID:    uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Vocabulary: vocabulary,
		IDF:        idf,
		Matrix:     matrix,
		Chunks:     append([]domain.Chunk(nil), chunks...),
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Built bundle %s: %d rows x %d dims", bundle.BuildID, matrix.Rows, matrix.NumCols)
	return bundle, nil
}
