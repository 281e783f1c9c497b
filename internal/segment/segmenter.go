// Package segment recovers chapter structure from normalized text.
package segment

import (
	"regexp"
	"strings"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

// headingRe matches lines like "CHAPTER VII - The Sorting Hat" or
// "Chapter 12: Title". The numeral group accepts roman characters or
// decimal digits; the label is kept verbatim, never parsed as a
// number.
var headingRe = regexp.MustCompile(`(?mi)^chapter[ \t]+([ivxlcdm]+|\d+)[ \t]*[:\-–—]?[ \t]*(.*)$`)

// Split scans text for chapter headings and returns one Section per
// heading, in document order. A section's body runs from the end of
// its heading line to the start of the next heading. When no heading
// is found the whole text becomes a single section with an empty title
// and the default label "1".
func Split(text string) []domain.Section {
	matches := headingRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []domain.Section{{Label: "1", Title: "", Body: strings.TrimSpace(text)}}
	}

	sections := make([]domain.Section, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, domain.Section{
			Label: text[m[2]:m[3]],
			Title: strings.TrimSpace(text[m[4]:m[5]]),
			Body:  strings.TrimSpace(text[m[1]:end]),
		})
	}
	return sections
}
