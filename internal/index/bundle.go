package index

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/logger"
)

// Bundle asset file names. All three are required together; a loader
// must never observe a partial write.
const (
	VectorizerFile = "vectorizer.gob"
	MatrixFile     = "matrix.gob"
	ChunkIndexFile = "chunks_index.json"
)

// Bundle is the compiled, immutable index: vocabulary, IDF weights,
// the normalised chunk matrix and the chunk metadata. Row i of Matrix
// is the vector for Chunks[i].
type Bundle struct {
	// BuildID identifies the build run that produced this bundle.
	BuildID string

	// CreatedAt is when the build completed.
	CreatedAt time.Time

	// Vocabulary maps a normalised term to its dimension index.
	Vocabulary map[string]int

	// IDF holds one inverse-document-frequency weight per dimension.
	IDF []float64

	// Matrix holds one L2-normalised sparse row per chunk.
	Matrix *Matrix

	// Chunks is the ordered chunk metadata, positionally aligned with
	// Matrix rows.
	Chunks []domain.Chunk
}

// vectorizerRecord is the on-disk form of the vocabulary asset.
type vectorizerRecord struct {
	BuildID    string
	CreatedAt  time.Time
	Vocabulary map[string]int
	IDF        []float64
}

// Validate checks the bundle's internal consistency: row/metadata
// alignment, dimension counts and chunk id uniqueness. A mismatch is
// fatal; the bundle must never be truncated to the shorter length.
func (b *Bundle) Validate() error {
	if b.Matrix == nil || !b.Matrix.wellFormed() {
		return fmt.Errorf("%w: malformed matrix", domain.ErrBundleMismatch)
	}
	if len(b.Chunks) != b.Matrix.Rows {
		return fmt.Errorf("%w: %d chunks vs %d matrix rows",
			domain.ErrBundleMismatch, len(b.Chunks), b.Matrix.Rows)
	}
	if len(b.IDF) != len(b.Vocabulary) || len(b.IDF) != b.Matrix.NumCols {
		return fmt.Errorf("%w: vocabulary %d terms, %d idf weights, %d matrix columns",
			domain.ErrBundleMismatch, len(b.Vocabulary), len(b.IDF), b.Matrix.NumCols)
	}
	seen := make(map[string]struct{}, len(b.Chunks))
	for _, chunk := range b.Chunks {
		if _, dup := seen[chunk.ChunkID]; dup {
			return fmt.Errorf("%w: duplicate chunk id %q", domain.ErrBundleMismatch, chunk.ChunkID)
		}
		seen[chunk.ChunkID] = struct{}{}
	}
	return nil
}

// Save writes the bundle into dir as one logical unit. Assets are
// staged in a temporary sibling directory and published with a rename,
// so a concurrent loader sees either the previous bundle or the new
// one, never a mix.
func (b *Bundle) Save(dir string) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o700); err != nil {
		return fmt.Errorf("creating bundle parent: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".bundle-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeGob(filepath.Join(staging, VectorizerFile), vectorizerRecord{
		BuildID:    b.BuildID,
		CreatedAt:  b.CreatedAt,
		Vocabulary: b.Vocabulary,
		IDF:        b.IDF,
	}); err != nil {
		return fmt.Errorf("writing vectorizer: %w", err)
	}
	if err := writeGob(filepath.Join(staging, MatrixFile), b.Matrix); err != nil {
		return fmt.Errorf("writing matrix: %w", err)
	}
	if err := writeChunkIndex(filepath.Join(staging, ChunkIndexFile), b.Chunks); err != nil {
		return fmt.Errorf("writing chunk index: %w", err)
	}

	// Publish: move any previous bundle out of the way, rename the
	// staging directory into place, then discard the old bundle.
	old := dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clearing stale bundle: %w", err)
	}
	if _, err := os.Stat(dir); err == nil {
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("retiring previous bundle: %w", err)
		}
	}
	if err := os.Rename(staging, dir); err != nil {
		return fmt.Errorf("publishing bundle: %w", err)
	}
	if err := os.RemoveAll(old); err != nil {
		logger.Warn("Could not remove retired bundle at %s: %v", old, err)
	}

	logger.Debug("Bundle %s published to %s", b.BuildID, dir)
	return nil
}

// Load reads a bundle from dir and validates it. Each absent asset
// yields a named missing-asset error so the caller knows exactly which
// artifact to rebuild.
func Load(dir string) (*Bundle, error) {
	for _, name := range []string{VectorizerFile, MatrixFile, ChunkIndexFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", domain.ErrMissingAsset, name)
			}
			return nil, fmt.Errorf("checking %s: %w", name, err)
		}
	}

	var record vectorizerRecord
	if err := readGob(filepath.Join(dir, VectorizerFile), &record); err != nil {
		return nil, fmt.Errorf("reading vectorizer: %w", err)
	}
	matrix := &Matrix{}
	if err := readGob(filepath.Join(dir, MatrixFile), matrix); err != nil {
		return nil, fmt.Errorf("reading matrix: %w", err)
	}
	chunks, err := readChunkIndex(filepath.Join(dir, ChunkIndexFile))
	if err != nil {
		return nil, fmt.Errorf("reading chunk index: %w", err)
	}

	bundle := &Bundle{
		BuildID:    record.BuildID,
		CreatedAt:  record.CreatedAt,
		Vocabulary: record.Vocabulary,
		IDF:        record.IDF,
		Matrix:     matrix,
		Chunks:     chunks,
	}
	if bundle.Vocabulary == nil {
		bundle.Vocabulary = map[string]int{}
	}
	if bundle.IDF == nil {
		bundle.IDF = []float64{}
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Loaded bundle %s: %d rows x %d dims", bundle.BuildID, matrix.Rows, matrix.NumCols)
	return bundle, nil
}

func writeGob(path string, value any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(value); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readGob(path string, value any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(value)
}

// writeChunkIndex stores chunk metadata as a JSON array, kept human
// readable for inspection alongside the binary assets.
func writeChunkIndex(path string, chunks []domain.Chunk) error {
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readChunkIndex(path string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}
