package analysis

import "strings"

// defaultStopwords are low-information words dropped before counting.
var defaultStopwords = []string{
	"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
	"by", "a", "an", "as", "are", "was", "were", "been", "be", "have",
	"has", "had", "do", "does", "did", "will", "would", "could", "should",
	"may", "might", "must", "can", "is", "it", "this", "that", "these",
	"those", "i", "you", "he", "she", "we", "they", "me", "him", "her",
	"us", "them", "my", "your", "his", "its", "our", "their",
}

// StopwordFilter answers whether a lower-case token should be discarded.
type StopwordFilter struct {
	words map[string]struct{}
}

// DefaultStopwords is the canonical filter with no extra words.
var DefaultStopwords = NewStopwordFilter()

// NewStopwordFilter builds a filter from the canonical list plus any extra words.
// Extra words are trimmed and lower-cased; empty entries are ignored.
func NewStopwordFilter(extra ...string) *StopwordFilter {
	words := make(map[string]struct{}, len(defaultStopwords)+len(extra))
	for _, w := range defaultStopwords {
		words[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		words[w] = struct{}{}
	}
	return &StopwordFilter{words: words}
}

func (f *StopwordFilter) IsStopword(token string) bool {
	if f == nil {
		return false
	}
	_, ok := f.words[token]
	return ok
}

// Len returns the number of words in the filter.
func (f *StopwordFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.words)
}
