// Package index implements the vector index over passages: an
// immutable in-memory snapshot with brute-force cosine search,
// persisted to a directory and gated by a document fingerprint.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

// Snapshot is a fully built index: passages, their vectors in the same
// order, and the fingerprint of the document they were built from. A
// snapshot is never mutated after Build; rebuilds replace it
// wholesale.
type Snapshot struct {
	Fingerprint string
	Dimension   int
	Passages    []domain.Passage
	Vectors     [][]float64
}

// Build validates the passage/vector pairing and constructs a
// snapshot.
func Build(passages []domain.Passage, vectors [][]float64, fingerprint string) (*Snapshot, error) {
	if len(passages) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", domain.ErrIndexBuild)
	}
	if len(passages) != len(vectors) {
		return nil, fmt.Errorf("%w: %d passages but %d vectors",
			domain.ErrIndexBuild, len(passages), len(vectors))
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d",
				domain.ErrIndexBuild, i, len(v), dim)
		}
	}
	return &Snapshot{
		Fingerprint: fingerprint,
		Dimension:   dim,
		Passages:    passages,
		Vectors:     vectors,
	}, nil
}

// Search returns up to k passages ranked by descending cosine
// similarity to the query vector. Ties keep original passage order. A
// k larger than the corpus returns the whole corpus; a query whose
// dimension disagrees with the stored vectors returns no results
// rather than a truncated comparison. Search is read-only and safe for
// concurrent use.
func (s *Snapshot) Search(query []float64, k int) []domain.SearchResult {
	if k <= 0 || len(query) != s.Dimension {
		return nil
	}
	results := make([]domain.SearchResult, len(s.Passages))
	for i := range s.Passages {
		results[i] = domain.SearchResult{
			Passage: s.Passages[i],
			Score:   cosine(query, s.Vectors[i]),
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// Texts returns the passage texts in index order, used to re-prepare
// corpus-dependent embedders after a cache load.
func (s *Snapshot) Texts() []string {
	texts := make([]string, len(s.Passages))
	for i, p := range s.Passages {
		texts[i] = p.Text
	}
	return texts
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
