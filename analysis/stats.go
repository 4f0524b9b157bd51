package analysis

import "math"

// Stats are descriptive numbers about a token stream.
type Stats struct {
	TotalTokens      int         `json:"total_tokens"`
	UniqueTokens     int         `json:"unique_tokens"`
	LexicalDiversity float64     `json:"lexical_diversity"`
	AverageLength    float64     `json:"average_length"`
	Top              []WordCount `json:"top"`
}

// Describe computes Stats for tokens, keeping the topN most frequent words.
func Describe(tokens TokenStream, topN int) Stats {
	if len(tokens) == 0 {
		return Stats{Top: []WordCount{}}
	}

	all := Frequencies(tokens, 0)

	letters := 0
	for _, t := range tokens {
		letters += len(t)
	}

	top := all
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	return Stats{
		TotalTokens:      len(tokens),
		UniqueTokens:     len(all),
		LexicalDiversity: round2(float64(len(all)) / float64(len(tokens))),
		AverageLength:    round2(float64(letters) / float64(len(tokens))),
		Top:              top,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
