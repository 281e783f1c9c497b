package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitThreeChapters(t *testing.T) {
	text := "CHAPTER I — The Boy Who Lived\n\nOpening text.\n\n" +
		"CHAPTER II: The Vanishing Glass\n\nMiddle text.\n\n" +
		"CHAPTER III The Letters from No One\n\nClosing text."

	sections := Split(text)
	require.Len(t, sections, 3)

	assert.Equal(t, "I", sections[0].Label)
	assert.Equal(t, "The Boy Who Lived", sections[0].Title)
	assert.Equal(t, "Opening text.", sections[0].Body)

	assert.Equal(t, "II", sections[1].Label)
	assert.Equal(t, "The Vanishing Glass", sections[1].Title)
	assert.Equal(t, "Middle text.", sections[1].Body)

	assert.Equal(t, "III", sections[2].Label)
	assert.Equal(t, "The Letters from No One", sections[2].Title)
	assert.Equal(t, "Closing text.", sections[2].Body)
}

func TestSplitArabicNumerals(t *testing.T) {
	sections := Split("Chapter 7 - The Sorting Hat\nBody here.")
	require.Len(t, sections, 1)
	assert.Equal(t, "7", sections[0].Label)
	assert.Equal(t, "The Sorting Hat", sections[0].Title)
}

func TestSplitCaseInsensitive(t *testing.T) {
	sections := Split("chapter iv\nlowercase heading body")
	require.Len(t, sections, 1)
	assert.Equal(t, "iv", sections[0].Label)
	assert.Equal(t, "", sections[0].Title)
}

func TestSplitNoHeadings(t *testing.T) {
	sections := Split("Just a plain document without any structure markers.")
	require.Len(t, sections, 1)
	assert.Equal(t, "1", sections[0].Label)
	assert.Equal(t, "", sections[0].Title)
	assert.Equal(t, "Just a plain document without any structure markers.", sections[0].Body)
}

func TestSplitKeepsDuplicateLabelsInDocumentOrder(t *testing.T) {
	text := "CHAPTER II\nfirst\nCHAPTER II\nsecond\nCHAPTER I\nthird"
	sections := Split(text)
	require.Len(t, sections, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{sections[0].Body, sections[1].Body, sections[2].Body})
	assert.Equal(t, "I", sections[2].Label)
}
