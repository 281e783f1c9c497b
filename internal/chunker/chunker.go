// Package chunker splits sections into overlapping bounded-size
// passages on paragraph boundaries.
package chunker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

const paragraphSep = "\n\n"

// Chunker greedily packs whole paragraphs into passages of at most
// chunkSize characters, seeding each new passage with the tail of the
// previous one so context carries across the boundary. Paragraphs are
// never split: a single paragraph longer than chunkSize is emitted as
// its own oversized passage.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// New creates a Chunker with the given character budgets.
func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Chunk converts sections into passages. Every non-empty paragraph of
// a section appears verbatim in at least one of its passages. Zero
// passages across all sections is a hard error: an empty corpus cannot
// serve retrieval.
func (c *Chunker) Chunk(source string, sections []domain.Section) ([]domain.Passage, error) {
	var passages []domain.Passage
	for _, sec := range sections {
		passages = append(passages, c.chunkSection(source, sec)...)
	}
	if len(passages) == 0 {
		return nil, fmt.Errorf("%w: source %s", domain.ErrNoPassages, source)
	}
	return passages, nil
}

func (c *Chunker) chunkSection(source string, sec domain.Section) []domain.Passage {
	var (
		passages []domain.Passage
		buffer   string
		paras    []string
	)

	seal := func() {
		text := strings.TrimSpace(buffer)
		if text == "" {
			return
		}
		passages = append(passages, domain.Passage{
			Text: text,
			Meta: domain.PassageMetadata{
				Source:     source,
				Chapter:    sec.Label,
				Title:      sec.Title,
				Paragraphs: append([]string(nil), paras...),
			},
		})
	}

	for _, p := range paragraphRe.Split(sec.Body, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if buffer != "" && len(buffer)+len(p) > c.chunkSize {
			seal()
			// Seed the next buffer with the tail of the sealed
			// passage; the whole passage when it is shorter than the
			// overlap budget.
			overlap := tail(strings.TrimSpace(buffer), c.chunkOverlap)
			buffer = overlap + paragraphSep + p + paragraphSep
			// Overlap text is attributed to whichever prior paragraphs
			// still appear verbatim in the new buffer. Substring
			// containment is a known approximation: a paragraph whose
			// text recurs elsewhere in the section can be
			// mis-attributed.
			kept := paras[:0]
			for _, pp := range paras {
				if strings.Contains(buffer, pp) {
					kept = append(kept, pp)
				}
			}
			paras = append(kept, p)
			continue
		}
		buffer += p + paragraphSep
		paras = append(paras, p)
	}
	seal()
	return passages
}

// tail returns at most the last n bytes of s, trimmed forward to the
// next rune boundary so the overlap never starts mid-rune.
func tail(s string, n int) string {
	if n >= len(s) {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}
