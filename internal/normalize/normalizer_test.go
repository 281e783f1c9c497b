package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRemovesPageNumbers(t *testing.T) {
	n := New()
	in := "Some prose here.\n   42   \nMore prose."
	assert.Equal(t, "Some prose here.\nMore prose.", n.Normalize(in))
}

func TestNormalizeKeepsNumbersInsideProse(t *testing.T) {
	n := New()
	in := "He was 11 years old."
	assert.Equal(t, in, n.Normalize(in))
}

func TestNormalizeRemovesHeaderFooterLines(t *testing.T) {
	n := New("Harry Potter and the Sorcerer's Stone", "J.K. Rowling")

	in := "HARRY POTTER AND THE SORCERER'S STONE\nThe boy who lived.\nJ.K. ROWLING\nEnd."
	assert.Equal(t, "The boy who lived.\nEnd.", n.Normalize(in))
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	n := New()
	in := "first paragraph\n\n\n\n\nsecond paragraph"
	assert.Equal(t, "first paragraph\n\nsecond paragraph", n.Normalize(in))
}

func TestNormalizeTrims(t *testing.T) {
	n := New()
	assert.Equal(t, "text", n.Normalize("\n\n   text  \n\n"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := New("Running Header")
	inputs := []string{
		"a\n\n\n\nb\n 12 \nRunning Header\nc",
		"",
		"   \n\n  ",
		"plain text with no noise at all",
		"1\n2\n3",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}
