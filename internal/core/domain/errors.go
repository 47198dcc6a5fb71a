package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAsset indicates a required index artifact is absent.
	// The engine must not be constructed without the full asset triple.
	ErrMissingAsset = errors.New("missing index asset")

	// ErrBundleMismatch indicates the loaded bundle is internally
	// inconsistent (matrix rows and chunk metadata disagree).
	ErrBundleMismatch = errors.New("index bundle mismatch")

	// ErrEmptyCorpus indicates segmentation produced no articles.
	// Building still succeeds with an empty bundle; this error is only
	// returned by operations that require at least one article.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrEngineUnavailable indicates the retrieval engine is not loaded.
	// Callers decide whether to operate in a degraded ungrounded mode.
	ErrEngineUnavailable = errors.New("retrieval engine unavailable")
)
