package domain

// DefaultTopK is the default number of results returned by a query.
const DefaultTopK = 5

// DefaultMinScore is the default similarity threshold below which a
// candidate passage is discarded.
const DefaultMinScore = 0.05

// RetrievalOptions configures a retrieval query.
type RetrievalOptions struct {
	// TopK is the maximum number of results. Defaults to DefaultTopK
	// when zero or negative.
	TopK int

	// MinScore is the minimum cosine similarity for a passage to be
	// accepted, in [0,1]. Defaults to DefaultMinScore when zero.
	MinScore float64
}

// RetrievalResult is a single scored passage. Results are constructed
// fresh per query and never persisted.
type RetrievalResult struct {
	// ChunkID identifies the matched chunk.
	ChunkID string `json:"chunk_id"`

	// Article is the parent article label.
	Article string `json:"article"`

	// Title is the parent article title.
	Title string `json:"title"`

	// Chapter is the enclosing chapter context, if any.
	Chapter string `json:"chapter,omitempty"`

	// Section is the enclosing section context, if any.
	Section string `json:"section,omitempty"`

	// Text is the passage text.
	Text string `json:"text"`

	// Score is the cosine similarity against the query, in [0,1].
	Score float64 `json:"score"`
}
