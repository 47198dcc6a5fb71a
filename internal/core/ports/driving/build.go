package driving

import (
	"context"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

// BuildService runs the offline corpus build pipeline.
type BuildService interface {
	// Build extracts, segments, chunks and indexes the source document,
	// publishing the index bundle and corpus artifacts atomically.
	Build(ctx context.Context, sourcePath string) (*domain.BuildInfo, error)
}
