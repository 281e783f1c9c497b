// Package service exposes the retrieval façade: it owns the ingestion
// pipeline and answers top-k passage lookups for the chat layer.
package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/chunker"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/config"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/extract"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/index"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/normalize"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/segment"
)

// NoPassagesFound is returned to callers when a query matches nothing
// or cannot be embedded; the chat layer never sees a raw error.
const NoPassagesFound = "No relevant passages found."

// passageDelimiter joins ranked passage texts in Search output.
const passageDelimiter = "\n---\n"

// Retrieval owns the pipeline from document bytes to ranked passages.
// Open publishes an immutable snapshot once; concurrent Search calls
// after that are read-only and lock-free on the snapshot itself.
type Retrieval struct {
	cfg      *config.AppConfig
	embedder domain.Embedder
	chunker  domain.Chunker
	norm     *normalize.Normalizer
	cache    *index.Manager
	logger   *zap.Logger

	mu    sync.RWMutex
	snap  *index.Snapshot
	ready chan struct{}
}

// New assembles a retrieval service. Call Open (or OpenAsync) before
// Search.
func New(cfg *config.AppConfig, embedder domain.Embedder, logger *zap.Logger) *Retrieval {
	return &Retrieval{
		cfg:      cfg,
		embedder: embedder,
		chunker:  chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap),
		norm:     normalize.New(cfg.Normalizer.HeaderFooters...),
		cache:    index.NewManager(cfg.Document.IndexDir, logger),
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Open loads the persisted index when its fingerprint matches the
// current document, and otherwise runs the full ingestion pipeline and
// persists the result. It must complete before any search is served;
// ingestion errors are fatal to the service.
func (r *Retrieval) Open() error {
	fingerprint, err := index.Fingerprint(r.cfg.Document.Path)
	if err != nil {
		return err
	}

	snap, ok := r.cache.Cached(fingerprint)
	if ok {
		// Corpus-dependent embedders (the local fallback) rebuild
		// their vocabulary from the persisted passages; deterministic
		// term ordering makes query vectors identical to build time,
		// and no network call is involved on a cache hit.
		if err := r.embedder.Prepare(snap.Texts()); err != nil {
			return fmt.Errorf("prepare embedder: %w", err)
		}
		// A snapshot built by a different backend (or model) has a
		// different dimension; serving it would mis-rank every query.
		// The dimension is known here: post-probe for the remote
		// embedder, post-Prepare for the local one.
		if d := r.embedder.Dimension(); d != 0 && d != snap.Dimension {
			r.logger.Info("embedder dimension disagrees with persisted index, rebuilding",
				zap.String("embedder", r.embedder.Name()),
				zap.Int("embedder_dimension", d),
				zap.Int("index_dimension", snap.Dimension),
			)
			ok = false
		}
	}
	if !ok {
		snap, err = r.rebuild(fingerprint)
		if err != nil {
			return err
		}
	}

	r.mu.Lock()
	first := r.snap == nil
	r.snap = snap
	r.mu.Unlock()
	if first {
		close(r.ready)
	}
	return nil
}

// OpenAsync runs Open on a background goroutine so callers are not
// blocked by a cold-start rebuild. The returned channel delivers the
// single Open result; searches stay gated until the snapshot is
// published.
func (r *Retrieval) OpenAsync() <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- r.Open() }()
	return errc
}

// Ready is closed once a snapshot has been published and searches can
// be served.
func (r *Retrieval) Ready() <-chan struct{} { return r.ready }

// Search embeds the query and returns the top-k passage texts joined
// by a fixed delimiter, or the NoPassagesFound sentinel. A per-call
// embedding failure degrades to the sentinel rather than failing the
// service. k <= 0 uses the configured default.
func (r *Retrieval) Search(query string, k int) (string, error) {
	results, err := r.Results(query, k)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return NoPassagesFound, nil
	}
	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Passage.Text
	}
	return strings.Join(texts, passageDelimiter), nil
}

// Request is the structured query shape some collaborators send;
// whichever of Question or Query is non-empty is used.
type Request struct {
	Question string `json:"question" yaml:"question"`
	Query    string `json:"query"    yaml:"query"`
}

// SearchRequest unwraps a structured request and delegates to Search.
func (r *Retrieval) SearchRequest(req Request, k int) (string, error) {
	query := req.Question
	if query == "" {
		query = req.Query
	}
	if strings.TrimSpace(query) == "" {
		return NoPassagesFound, nil
	}
	return r.Search(query, k)
}

// Results returns ranked (passage, score) pairs for a query. It is the
// structured counterpart of Search, used by the TUI.
func (r *Retrieval) Results(query string, k int) ([]domain.SearchResult, error) {
	snap := r.snapshot()
	if snap == nil {
		return nil, domain.ErrNotReady
	}
	if k <= 0 {
		k = r.cfg.Retrieval.TopK
	}
	vec, err := r.embedder.Embed(query)
	if err != nil {
		r.logger.Warn("query embedding failed", zap.Error(err))
		return nil, nil
	}
	return snap.Search(vec, k), nil
}

func (r *Retrieval) snapshot() *index.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// rebuild runs the whole ingestion pipeline and persists the result
// before it is used: extract, normalize, segment, chunk, embed, build.
func (r *Retrieval) rebuild(fingerprint string) (*index.Snapshot, error) {
	started := time.Now()

	raw, err := extract.FromFile(r.cfg.Document.Path)
	if err != nil {
		return nil, err
	}
	text := r.norm.Normalize(raw)
	sections := segment.Split(text)

	source := filepath.Base(r.cfg.Document.Path)
	passages, err := r.chunker.Chunk(source, sections)
	if err != nil {
		return nil, err
	}
	r.logger.Info("document ingested",
		zap.String("source", source),
		zap.Int("sections", len(sections)),
		zap.Int("passages", len(passages)),
	)

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	if err := r.embedder.Prepare(texts); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}
	vectors := make([][]float64, len(passages))
	for i, t := range texts {
		vec, err := r.embedder.Embed(t)
		if err != nil {
			return nil, fmt.Errorf("embed passage %d: %w", i, err)
		}
		vectors[i] = vec
	}

	snap, err := index.Build(passages, vectors, fingerprint)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Store(snap); err != nil {
		return nil, err
	}
	r.logger.Info("index built and persisted",
		zap.String("embedder", r.embedder.Name()),
		zap.Int("dimension", snap.Dimension),
		zap.Duration("took", time.Since(started)),
	)
	return snap, nil
}
