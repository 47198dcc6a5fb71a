package domain

// Article represents one statutory article parsed from the source document.
// It is the canonical representation after segmentation and is immutable
// once the parse pass completes.
type Article struct {
	// Label is the canonical article label, e.g. "Article 8".
	Label string `json:"article"`

	// Title is the article heading text. May be empty when the source
	// provides no title line.
	Title string `json:"title"`

	// Chapter is the enclosing chapter context, formatted as
	// "CHAPTER I - General provisions". Empty when the article appears
	// before any chapter heading.
	Chapter string `json:"chapter,omitempty"`

	// Section is the enclosing section context, formatted like Chapter.
	// Empty when no section heading is active.
	Section string `json:"section,omitempty"`

	// Text is the full normalised body, paragraph lines joined by newlines.
	Text string `json:"text"`
}

// Chunk is a retrieval-sized passage derived from one article.
// Chunks are the unit actually scored and returned by retrieval.
type Chunk struct {
	// Article is the parent article label.
	Article string `json:"article"`

	// Title is inherited from the parent article.
	Title string `json:"title"`

	// Chapter is inherited from the parent article.
	Chapter string `json:"chapter,omitempty"`

	// Section is inherited from the parent article.
	Section string `json:"section,omitempty"`

	// ChunkID is deterministic and unique within one corpus build,
	// e.g. "article_8_p2".
	ChunkID string `json:"chunk_id"`

	// Text is the trimmed passage text.
	Text string `json:"text"`
}

// BuildInfo describes one completed corpus build.
type BuildInfo struct {
	// ID is the unique identifier for the build run.
	ID string

	// Source is the path of the document the corpus was built from.
	Source string

	// ArticleCount is the number of articles segmented.
	ArticleCount int

	// ChunkCount is the number of retrieval chunks produced.
	ChunkCount int

	// VocabularySize is the number of index dimensions.
	VocabularySize int

	// CreatedAt is when the build completed, in RFC 3339 form.
	CreatedAt string
}
