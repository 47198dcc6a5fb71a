package segmenter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

// paragraphBoundary marks a split point: a newline immediately followed
// by a numbered paragraph label such as "2.". The newline itself is not
// part of either segment.
var paragraphBoundary = regexp.MustCompile(`\n\d+\.`)

// Splitter subdivides article bodies into retrieval chunks with
// deterministic identifiers.
type Splitter struct{}

// NewSplitter creates a chunk splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split produces zero or more chunks covering the article body.
// Segments are numbered by their position in the pre-filter split
// sequence; whitespace-only segments are dropped but their ordinal is
// not reused, so chunk ids may have gaps.
func (sp *Splitter) Split(article domain.Article) []domain.Chunk {
	if article.Text == "" {
		return nil
	}

	idPrefix := strings.ToLower(strings.ReplaceAll(article.Label, " ", "_"))

	var chunks []domain.Chunk
	for i, segment := range splitParagraphs(article.Text) {
		text := strings.TrimSpace(segment)
		if text == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			Article: article.Label,
			Title:   article.Title,
			Chapter: article.Chapter,
			Section: article.Section,
			ChunkID: idPrefix + "_p" + strconv.Itoa(i+1),
			Text:    text,
		})
	}
	return chunks
}

// SplitAll chunks every article in order, preserving document order
// across the whole corpus.
func (sp *Splitter) SplitAll(articles []domain.Article) []domain.Chunk {
	var chunks []domain.Chunk
	for _, article := range articles {
		chunks = append(chunks, sp.Split(article)...)
	}
	return chunks
}

// splitParagraphs cuts the body at numbered-paragraph boundaries. The
// body is returned whole when no boundary exists.
func splitParagraphs(text string) []string {
	locs := paragraphBoundary.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	parts := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		parts = append(parts, text[prev:loc[0]])
		prev = loc[0] + 1 // skip the newline, keep the "N." label
	}
	parts = append(parts, text[prev:])
	return parts
}
