package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/config"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/embedding"
)

const testBook = `CHAPTER I — The Boy Who Lived

Mr and Mrs Dursley of number four Privet Drive were proud to say they were perfectly normal.

Nothing strange ever happened on their street, or so the neighbours believed.

CHAPTER II — The Vanishing Glass

Harry dreamed of a flying motorcycle and a blinding flash of green light.

The snake at the zoo winked at Harry through the glass before it vanished.

CHAPTER III — The Letters from No One

Letters addressed in emerald ink kept arriving for Harry no matter where he hid.
`

// countingEmbedder wraps the local embedder to observe how often the
// corpus is re-embedded; a cache hit must never call Embed for
// passages.
type countingEmbedder struct {
	inner        domain.Embedder
	embedCalls   int
	prepareCalls int
}

func (c *countingEmbedder) Name() string { return c.inner.Name() }
func (c *countingEmbedder) Prepare(corpus []string) error {
	c.prepareCalls++
	return c.inner.Prepare(corpus)
}
func (c *countingEmbedder) Dimension() int { return c.inner.Dimension() }
func (c *countingEmbedder) Embed(text string) ([]float64, error) {
	c.embedCalls++
	return c.inner.Embed(text)
}

// fixedDimEmbedder behaves like the remote backend: Prepare is a no-op
// and the dimension is fixed up front rather than derived from the
// corpus.
type fixedDimEmbedder struct {
	dim int
}

func (f *fixedDimEmbedder) Name() string                  { return "fixed" }
func (f *fixedDimEmbedder) Prepare(corpus []string) error { return nil }
func (f *fixedDimEmbedder) Dimension() int                { return f.dim }
func (f *fixedDimEmbedder) Embed(text string) ([]float64, error) {
	vec := make([]float64, f.dim)
	for i := range vec {
		vec[i] = float64((len(text)+i)%5 + 1)
	}
	return vec, nil
}

func testConfig(t *testing.T, bookText string) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	bookPath := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(bookPath, []byte(bookText), 0o644))

	cfg, err := config.Load(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	cfg.Document.Path = bookPath
	cfg.Document.IndexDir = filepath.Join(dir, "index")
	cfg.Chunker.ChunkSize = 200
	cfg.Chunker.ChunkOverlap = 40
	cfg.Retrieval.TopK = 3
	return cfg
}

func newTestService(cfg *config.AppConfig) (*Retrieval, *countingEmbedder) {
	emb := &countingEmbedder{inner: embedding.NewTFIDF()}
	return New(cfg, emb, zap.NewNop()), emb
}

func TestSearchBeforeOpenIsRejected(t *testing.T) {
	svc, _ := newTestService(testConfig(t, testBook))
	_, err := svc.Search("who lived at privet drive", 3)
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestOpenBuildsAndSearchReturnsPassages(t *testing.T) {
	cfg := testConfig(t, testBook)
	svc, emb := newTestService(cfg)

	require.NoError(t, svc.Open())
	assert.Greater(t, emb.embedCalls, 0, "cold start must embed the corpus")

	select {
	case <-svc.Ready():
	default:
		t.Fatal("Ready must be closed after Open")
	}

	out, err := svc.Search("snake at the zoo", 2)
	require.NoError(t, err)
	assert.NotEqual(t, NoPassagesFound, out)
	assert.Contains(t, out, "snake at the zoo")
	assert.Len(t, strings.Split(out, passageDelimiter), 2)
}

func TestResultsRespectsKBound(t *testing.T) {
	cfg := testConfig(t, testBook)
	svc, _ := newTestService(cfg)
	require.NoError(t, svc.Open())

	all, err := svc.Results("Harry", 100)
	require.NoError(t, err)
	corpus := len(all)
	require.Greater(t, corpus, 0)

	results, err := svc.Results("Harry", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Results("Harry", corpus+5)
	require.NoError(t, err)
	assert.Len(t, results, corpus)
}

func TestSecondOpenLoadsCacheWithoutReembedding(t *testing.T) {
	cfg := testConfig(t, testBook)

	first, emb1 := newTestService(cfg)
	require.NoError(t, first.Open())
	built := emb1.embedCalls
	require.Greater(t, built, 0)

	second, emb2 := newTestService(cfg)
	require.NoError(t, second.Open())
	assert.Zero(t, emb2.embedCalls, "cache hit must not re-embed the corpus")

	out, err := second.Search("emerald ink letters", 1)
	require.NoError(t, err)
	assert.Contains(t, out, "emerald ink")
	assert.Equal(t, 1, emb2.embedCalls, "only the query is embedded")
}

func TestChangedEmbedderDimensionForcesRebuild(t *testing.T) {
	cfg := testConfig(t, testBook)

	first, emb1 := newTestService(cfg)
	require.NoError(t, first.Open())
	require.Greater(t, emb1.embedCalls, 0)

	// Same document, different backend: the persisted snapshot's
	// dimension no longer matches, so the cache hit must be discarded
	// and the corpus re-embedded.
	flipped := &countingEmbedder{inner: &fixedDimEmbedder{dim: 4}}
	second := New(cfg, flipped, zap.NewNop())
	require.NoError(t, second.Open())
	assert.Greater(t, flipped.embedCalls, 0, "dimension mismatch must force a rebuild")

	out, err := second.Search("snake at the zoo", 1)
	require.NoError(t, err)
	assert.NotEqual(t, NoPassagesFound, out)
}

func TestChangedDocumentForcesRebuild(t *testing.T) {
	cfg := testConfig(t, testBook)

	first, _ := newTestService(cfg)
	require.NoError(t, first.Open())

	// same length, one byte different
	changed := strings.Replace(testBook, "winked", "winced", 1)
	require.Equal(t, len(testBook), len(changed))
	require.NoError(t, os.WriteFile(cfg.Document.Path, []byte(changed), 0o644))

	second, emb := newTestService(cfg)
	require.NoError(t, second.Open())
	assert.Greater(t, emb.embedCalls, 0, "byte-level change must force a rebuild")
}

func TestSearchRankingIsDeterministic(t *testing.T) {
	cfg := testConfig(t, testBook)
	svc, _ := newTestService(cfg)
	require.NoError(t, svc.Open())

	firstRun, err := svc.Results("flying motorcycle dream", 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Results("flying motorcycle dream", 3)
		require.NoError(t, err)
		assert.Equal(t, firstRun, again)
	}
}

func TestSearchRequestUnwrapsQuestionAndQuery(t *testing.T) {
	cfg := testConfig(t, testBook)
	svc, _ := newTestService(cfg)
	require.NoError(t, svc.Open())

	byQuestion, err := svc.SearchRequest(Request{Question: "snake at the zoo"}, 1)
	require.NoError(t, err)
	byQuery, err := svc.SearchRequest(Request{Query: "snake at the zoo"}, 1)
	require.NoError(t, err)
	assert.Equal(t, byQuestion, byQuery)

	empty, err := svc.SearchRequest(Request{}, 1)
	require.NoError(t, err)
	assert.Equal(t, NoPassagesFound, empty)
}

func TestOpenFailsWhenPipelineYieldsNoPassages(t *testing.T) {
	// digits-only lines normalize away entirely, leaving zero
	// paragraphs to chunk
	cfg := testConfig(t, "42\n\n17\n\n3\n")
	svc, _ := newTestService(cfg)

	err := svc.Open()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoPassages)
}

func TestOpenFailsOnMissingDocument(t *testing.T) {
	cfg := testConfig(t, testBook)
	cfg.Document.Path = filepath.Join(t.TempDir(), "missing.txt")
	svc, _ := newTestService(cfg)
	assert.Error(t, svc.Open())
}

func TestOpenAsyncGatesSearches(t *testing.T) {
	cfg := testConfig(t, testBook)
	svc, _ := newTestService(cfg)

	errc := svc.OpenAsync()
	<-svc.Ready()
	require.NoError(t, <-errc)

	out, err := svc.Search("privet drive", 1)
	require.NoError(t, err)
	assert.Contains(t, out, "Privet Drive")
}
