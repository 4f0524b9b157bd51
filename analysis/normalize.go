package analysis

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest token kept by Normalize.
const MinTokenLength = 3

var (
	wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	asciiWord = regexp.MustCompile(`^[A-Za-z]+$`)
)

// TokenStream is an ordered sequence of normalized tokens. Duplicates are kept.
type TokenStream []string

// String joins the tokens with single spaces.
func (ts TokenStream) String() string {
	return strings.Join(ts, " ")
}

// Normalize tokenizes raw text with the default stopword filter.
func Normalize(raw string) TokenStream {
	return NormalizeWith(raw, DefaultStopwords)
}

// NormalizeWith splits raw text into Unicode word runs and keeps only the runs
// made entirely of ASCII letters, so "café" or "track22love" are dropped whole
// rather than cut into fragments. Kept words are lower-cased; stopwords and
// tokens shorter than MinTokenLength are dropped. Insertion order is kept.
func NormalizeWith(raw string, filter *StopwordFilter) TokenStream {
	matches := wordRegex.FindAllString(raw, -1)
	tokens := make(TokenStream, 0, len(matches))
	for _, m := range matches {
		if len(m) < MinTokenLength || !asciiWord.MatchString(m) {
			continue
		}
		token := strings.ToLower(m)
		if filter.IsStopword(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Tokens splits already-normalized, space-joined text back into a TokenStream.
func Tokens(text string) TokenStream {
	return TokenStream(strings.Fields(text))
}
