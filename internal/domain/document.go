package domain

// Section is a contiguous span of normalized book text, usually one
// chapter. Label is kept exactly as printed in the source (roman or
// arabic); it is an opaque string, not an ordinal.
type Section struct {
	Label string
	Title string
	Body  string
}

// PassageMetadata records where a passage came from.
type PassageMetadata struct {
	Source     string
	Chapter    string
	Title      string
	Paragraphs []string
}

// Passage is the unit of retrieval: a bounded-size, possibly
// overlapping slice of section text plus its provenance.
type Passage struct {
	Text string
	Meta PassageMetadata
}

// SearchResult is a passage matched against a query, with a cosine
// similarity score.
type SearchResult struct {
	Passage Passage
	Score   float64
}
