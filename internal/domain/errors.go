package domain

import "errors"

// Failure classes of the ingestion and retrieval pipeline. Ingestion
// errors (extraction, chunking, build) are fatal: without a valid
// index there is nothing to serve. Load errors are recovered by a full
// rebuild and never surface past the cache manager.
var (
	// ErrExtraction means the document could not be parsed or yielded
	// no text on any page.
	ErrExtraction = errors.New("no text extracted from document")

	// ErrNoPassages means the full pipeline produced zero passages; an
	// empty corpus cannot serve retrieval.
	ErrNoPassages = errors.New("no passages produced")

	// ErrIndexLoad marks a persisted index that is missing, truncated
	// or structurally incompatible.
	ErrIndexLoad = errors.New("persisted index unreadable")

	// ErrIndexBuild marks a failure to build or persist a fresh index.
	ErrIndexBuild = errors.New("index build failed")

	// ErrEmbedding marks a failed embedding call.
	ErrEmbedding = errors.New("embedding failed")

	// ErrNotReady is returned when search is attempted before a
	// snapshot has been published.
	ErrNotReady = errors.New("retrieval index not ready")
)
