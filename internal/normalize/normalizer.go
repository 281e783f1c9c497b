// Package normalize cleans extracted text before structural
// segmentation: page numbers and recurring header/footer lines are
// removed and blank-line runs are collapsed. Normalization is pure and
// idempotent.
package normalize

import (
	"strings"
)

// Normalizer strips configured header/footer phrases in addition to
// page numbers.
type Normalizer struct {
	headerFooters map[string]struct{}
}

// New creates a Normalizer. Each phrase is matched case-insensitively
// against whole lines.
func New(headerFooters ...string) *Normalizer {
	m := make(map[string]struct{}, len(headerFooters))
	for _, p := range headerFooters {
		m[normalizeKey(p)] = struct{}{}
	}
	return &Normalizer{headerFooters: m}
}

// Normalize removes standalone numeric lines and header/footer lines,
// collapses runs of blank lines to a single blank line and trims the
// result. Re-normalizing normalized text yields the same text.
func (n *Normalizer) Normalize(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && isDigits(trimmed) {
			continue
		}
		if _, ok := n.headerFooters[normalizeKey(trimmed)]; ok && trimmed != "" {
			continue
		}
		if trimmed == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			// keep a single separator line, without stray whitespace
			kept = append(kept, "")
			continue
		}
		blanks = 0
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
