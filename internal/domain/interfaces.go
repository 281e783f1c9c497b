package domain

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus;
// vectors are L2-normalized and dimension-stable for the lifetime of
// the embedder.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Chunker splits labeled sections into retrieval passages.
type Chunker interface {
	Chunk(source string, sections []Section) ([]Passage, error)
}

// Retriever is the capability the chat layer consumes: top-k passage
// lookup for a question, joined into a single string.
type Retriever interface {
	Search(query string, k int) (string, error)
	Results(query string, k int) ([]SearchResult, error)
}
