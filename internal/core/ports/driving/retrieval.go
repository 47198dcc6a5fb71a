package driving

import (
	"context"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

// RetrievalService answers similarity queries against the loaded
// index bundle.
type RetrievalService interface {
	// Retrieve returns ranked passages for the query. An empty query
	// yields an empty slice, not an error.
	Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error)

	// Reload replaces the served bundle with the one currently on
	// disk, atomically.
	Reload() error
}
