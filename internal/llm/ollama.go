package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaGenerator calls a local Ollama server through LangChain Go.
type OllamaGenerator struct {
	client   *ollama.LLM
	logger   *zap.Logger
	timeout  time.Duration
	attempts int
	backoff  time.Duration
}

// Option tweaks an OllamaGenerator.
type Option func(*OllamaGenerator)

// WithTimeout bounds each generation attempt.
func WithTimeout(d time.Duration) Option {
	return func(g *OllamaGenerator) { g.timeout = d }
}

// WithRetry sets the attempt count and the fixed backoff between attempts.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(g *OllamaGenerator) {
		g.attempts = attempts
		g.backoff = backoff
	}
}

// NewOllamaGenerator connects to an Ollama server. An empty serverURL uses
// the client's default (http://localhost:11434).
func NewOllamaGenerator(model, serverURL string, logger *zap.Logger, opts ...Option) (*OllamaGenerator, error) {
	clientOpts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		clientOpts = append(clientOpts, ollama.WithServerURL(serverURL))
	}
	client, err := ollama.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init ollama client: %w", err)
	}

	g := &OllamaGenerator{
		client:   client,
		logger:   logger,
		timeout:  10 * time.Second,
		attempts: 3,
		backoff:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate runs the prompt with bounded retries. Transient failures are
// retried with a fixed backoff; the last error is returned once attempts are
// exhausted.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := llms.GenerateFromSinglePrompt(attemptCtx, g.client, prompt,
			llms.WithTemperature(0.1),
			llms.WithMaxTokens(120),
			llms.WithTopP(0.8),
		)
		cancel()

		if err == nil {
			text = strings.TrimSpace(text)
			if text != "" {
				return text, nil
			}
			err = fmt.Errorf("empty response from model")
		}
		lastErr = err
		g.logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == g.attempts || ctx.Err() != nil {
			break
		}
		select {
		case <-time.After(g.backoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("generate after %d attempts: %w", g.attempts, lastErr)
}
