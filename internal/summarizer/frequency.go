// Package summarizer condenses retrieved context for display: an
// extractive frequency-based summary, no model call involved.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
	wordRe     = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// Frequency ranks sentences by normalized token frequency and keeps
// the best ones in original order.
type Frequency struct {
	maxSentences int
}

// New creates a Frequency summarizer emitting at most maxSentences
// sentences.
func New(maxSentences int) *Frequency {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &Frequency{maxSentences: maxSentences}
}

// Summarize returns a short extractive summary of text.
func (f *Frequency) Summarize(text string) string {
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}

	freq := make(map[string]float64)
	for _, s := range sentences {
		for _, tok := range words(s) {
			freq[tok]++
		}
	}
	var maxFreq float64
	for _, v := range freq {
		if v > maxFreq {
			maxFreq = v
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		toks := words(s)
		var sc float64
		for _, tok := range toks {
			sc += freq[tok] / maxFreq
		}
		if len(toks) > 0 {
			sc /= math.Sqrt(float64(len(toks)))
		}
		ranked[i] = scored{i, sc}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	n := f.maxSentences
	if n > len(ranked) {
		n = len(ranked)
	}
	keep := make([]int, n)
	for i := 0; i < n; i++ {
		keep[i] = ranked[i].idx
	}
	sort.Ints(keep)

	out := make([]string, n)
	for i, idx := range keep {
		out[i] = strings.TrimSpace(sentences[idx])
	}
	return strings.Join(out, " ")
}

func words(s string) []string {
	return wordRe.FindAllString(strings.ToLower(s), -1)
}
