package analysis

import "sort"

// WordCount is a distinct token and how often it occurred.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequencies counts tokens and returns them ordered by count descending.
// Ties keep first-occurrence order. A limit <= 0 returns every distinct token.
func Frequencies(tokens TokenStream, limit int) []WordCount {
	index := make(map[string]int, len(tokens))
	counts := make([]WordCount, 0)
	for _, t := range tokens {
		if i, ok := index[t]; ok {
			counts[i].Count++
			continue
		}
		index[t] = len(counts)
		counts = append(counts, WordCount{Word: t, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
