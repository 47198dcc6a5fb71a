package domain

import "sort"

// ArticleCategories groups article labels by legal topic. It is an
// explicit immutable lookup passed into the services that need it,
// never mutated after construction.
type ArticleCategories map[string][]string

// DefaultArticleCategories returns the built-in GDPR topic map.
// Callers receive a fresh copy and may not observe shared state.
func DefaultArticleCategories() ArticleCategories {
	src := ArticleCategories{
		"principles": {"Article 5"},
		"lawfulness": {"Article 6", "Article 7", "Article 8", "Article 9"},
		"rights": {
			"Article 12", "Article 13", "Article 14", "Article 15",
			"Article 16", "Article 17", "Article 18", "Article 19",
			"Article 20", "Article 21", "Article 22",
		},
		"security": {"Article 25", "Article 32"},
		"breaches": {"Article 33", "Article 34"},
		"dpa":      {"Article 35"},
		"transfers": {
			"Article 44", "Article 45", "Article 46", "Article 47",
			"Article 48", "Article 49",
		},
		"remedies": {
			"Article 77", "Article 78", "Article 79", "Article 80",
			"Article 82",
		},
		"penalties": {"Article 83", "Article 84"},
	}

	out := make(ArticleCategories, len(src))
	for name, labels := range src {
		out[name] = append([]string(nil), labels...)
	}
	return out
}

// Names returns the category names in sorted order.
func (c ArticleCategories) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Labels returns the article labels for a category, or nil if the
// category is unknown.
func (c ArticleCategories) Labels(name string) []string {
	labels, ok := c[name]
	if !ok {
		return nil
	}
	return append([]string(nil), labels...)
}
