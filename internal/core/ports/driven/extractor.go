package driven

import "context"

// Extractor produces raw line-oriented UTF-8 text from a source
// document on disk.
type Extractor interface {
	// Extract reads the document at path and returns its plain text.
	Extract(ctx context.Context, path string) (string, error)
}
