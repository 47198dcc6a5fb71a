// Package segmenter parses raw statutory text into articles and splits
// article bodies into retrieval-sized chunks.
package segmenter

import (
	"regexp"
	"strings"

	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
)

// Heading patterns are matched against a whitespace-normalised line.
// The three forms are mutually exclusive.
var (
	chapterPattern = regexp.MustCompile(`(?i)^Chapter\s+[IVXLC]+$`)
	sectionPattern = regexp.MustCompile(`(?i)^Section\s+[IVXLC\d]+$`)
	articlePattern = regexp.MustCompile(`(?i)^Article\s+\d+[A-Za-z]?$`)
)

// headingKind classifies a normalised line.
type headingKind int

const (
	headingNone headingKind = iota
	headingChapter
	headingSection
	headingArticle
)

// scanState tracks what the scanner expects next. Title lookahead after
// a heading is modelled as its own state so the chapter/section reset
// rules stay in one place.
type scanState int

const (
	// stateScanning skips free text between structural units.
	stateScanning scanState = iota

	// stateChapterTitle expects the title line of the chapter just seen.
	stateChapterTitle

	// stateSectionTitle expects the title line of the section just seen.
	stateSectionTitle

	// stateArticleTitle expects the title line of the article just seen.
	stateArticleTitle

	// stateArticleBody accumulates body lines of the current article.
	stateArticleBody
)

// Segmenter turns raw extracted text into an ordered list of articles,
// tagging each with the chapter/section context active at its heading.
type Segmenter struct{}

// New creates a segmenter.
func New() *Segmenter {
	return &Segmenter{}
}

// Segment parses the full raw text and returns articles in document
// order. Unparseable input never fails; the worst case is fewer or
// less complete articles.
func (s *Segmenter) Segment(raw string) []domain.Article {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var (
		articles []domain.Article

		state          = stateScanning
		currentChapter string
		currentSection string

		current  *domain.Article
		bodyBuf  []string
		finished = func() {
			if current == nil {
				return
			}
			current.Text = strings.Join(bodyBuf, "\n")
			articles = append(articles, *current)
			current = nil
			bodyBuf = nil
		}
	)

	for _, rawLine := range lines {
		line := normalize(rawLine)
		if line == "" {
			// Blank lines neither satisfy a title lookahead nor
			// terminate body accumulation.
			continue
		}

		kind := classify(line)

		if kind == headingNone {
			switch state {
			case stateChapterTitle:
				currentChapter += " - " + line
				state = stateScanning
			case stateSectionTitle:
				currentSection += " - " + line
				state = stateScanning
			case stateArticleTitle:
				current.Title = line
				state = stateArticleBody
			case stateArticleBody:
				bodyBuf = append(bodyBuf, line)
			case stateScanning:
				// Text outside any article (preamble, page noise)
				// is silently skipped.
			}
			continue
		}

		// A heading in any state ends the pending lookahead and the
		// current article body.
		finished()

		switch kind {
		case headingChapter:
			currentChapter = strings.ToUpper(line)
			currentSection = ""
			state = stateChapterTitle
		case headingSection:
			currentSection = strings.ToUpper(line)
			state = stateSectionTitle
		case headingArticle:
			current = &domain.Article{
				Label:   articleLabel(line),
				Chapter: currentChapter,
				Section: currentSection,
			}
			state = stateArticleTitle
		}
	}

	finished()
	return articles
}

// normalize collapses repeated whitespace while keeping single spaces
// between words.
func normalize(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// classify reports which heading form the line matches, if any.
func classify(line string) headingKind {
	switch {
	case chapterPattern.MatchString(line):
		return headingChapter
	case sectionPattern.MatchString(line):
		return headingSection
	case articlePattern.MatchString(line):
		return headingArticle
	default:
		return headingNone
	}
}

// articleLabel canonicalises an article heading, e.g. "article 8a"
// becomes "Article 8A".
func articleLabel(line string) string {
	fields := strings.Fields(line)
	return "Article " + strings.ToUpper(fields[1])
}
