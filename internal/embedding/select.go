// Package embedding provides the pluggable text-to-vector capability:
// a remote OpenAI-compatible backend and a local TF-IDF fallback,
// selected once at startup via a probe.
package embedding

import (
	"go.uber.org/zap"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

// probeInput is the trivial text used to test remote availability.
const probeInput = "test"

// Select picks the embedding backend for the lifetime of the process.
// Without a configured endpoint the local fallback is used silently.
// With one, the remote backend is probed exactly once; on probe
// failure the fallback is selected permanently; there is no per-call
// retry-and-fallback later.
func Select(cfg RemoteConfig, logger *zap.Logger) domain.Embedder {
	if cfg.Endpoint == "" {
		logger.Info("embedding endpoint not configured, using local tf-idf embedder")
		return NewTFIDF()
	}

	remote, err := NewRemote(cfg)
	if err != nil {
		logger.Warn("remote embedder unavailable, using local tf-idf embedder", zap.Error(err))
		return NewTFIDF()
	}
	if _, err := remote.Embed(probeInput); err != nil {
		logger.Warn("remote embedding probe failed, using local tf-idf embedder",
			zap.String("endpoint", cfg.Endpoint),
			zap.Error(err),
		)
		return NewTFIDF()
	}
	logger.Info("using remote embedding service",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("model", cfg.Model),
		zap.Int("dimension", remote.Dimension()),
	)
	return remote
}
