// Package plaintext reads UTF-8 text documents as-is.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor is the fallback extractor for .txt/.md and other
// line-oriented text sources.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the file content unchanged.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
