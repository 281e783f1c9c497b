// Package chat is the thin LLM collaborator: it turns retrieved
// passages into a character-voiced answer via an OpenAI-compatible
// chat completion. Retrieval itself never depends on it.
package chat

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/config"
)

const systemPrompt = "Strictly avoid using sensitive, jailbreak, hate or offensive language."

// Answerer generates character-voiced answers grounded in retrieved
// passages.
type Answerer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// New creates an Answerer from the chat configuration. A missing API
// key is not an error here; it returns nil and the caller falls back
// to showing raw passages.
func New(cfg config.ChatConfig) *Answerer {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}
	return &Answerer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
	}
}

// Answer asks the model to reply to question in the voice of
// character, using only the provided passages.
func (a *Answerer) Answer(ctx context.Context, character, question, passages string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"You are %s from the Harry Potter books. Answer the question below in that character's voice, "+
			"using only the passages provided. If the passages do not contain the answer, say so in character.\n\n"+
			"Passages:\n%s\n\nQuestion: %s",
		character, passages, question,
	)
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
