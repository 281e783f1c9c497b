package embedding

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

// remoteDefaultTimeout bounds a single embedding call; expiry counts
// as a probe failure during backend selection.
const remoteDefaultTimeout = 30 * time.Second

// RemoteEmbedder calls an OpenAI-compatible embeddings endpoint.
type RemoteEmbedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	timeout   time.Duration
	dimension int
}

// RemoteConfig configures the remote embedder. Endpoint overrides the
// API base URL, so any OpenAI-compatible service works.
type RemoteConfig struct {
	Endpoint  string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewRemote creates a remote embedder from the given configuration.
func NewRemote(cfg RemoteConfig) (*RemoteEmbedder, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = remoteDefaultTimeout
	}
	return &RemoteEmbedder{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   openai.EmbeddingModel(model),
		timeout: timeout,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *RemoteEmbedder) Name() string { return "remote" }

// Prepare is a no-op: the remote model needs no corpus pass. The
// dimension is fixed lazily by the first successful Embed.
func (e *RemoteEmbedder) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced vectors, or 0
// before the first successful call.
func (e *RemoteEmbedder) Dimension() int { return e.dimension }

// Embed returns an embedding vector for the given text. Failures are
// reported as ErrEmbedding so callers can decide to fall back rather
// than crash.
func (e *RemoteEmbedder) Embed(text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty response", domain.ErrEmbedding)
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	if e.dimension == 0 {
		e.dimension = len(vec)
	}
	return vec, nil
}
