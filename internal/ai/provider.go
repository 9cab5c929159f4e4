// Package ai wraps the language model providers used for exercise discovery.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/exercise-discovery/internal/config"
)

var (
	ErrEmptyResponse   = errors.New("ai provider returned an empty response")
	ErrUnknownProvider = errors.New("unknown ai provider")
)

// Request is a single-turn completion request.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Provider produces a text completion for a request.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// NewFromConfig returns the provider selected by ai.provider. It returns a nil
// Provider and no error when the selected provider has no API key; callers
// treat that as "AI disabled".
func NewFromConfig(cfg config.Config) (Provider, error) {
	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(cfg.AI.Provider)) {
	case "", "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, nil
		}
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, timeout), nil
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, nil
		}
		return NewAnthropic(cfg.Anthropic.APIKey, cfg.Anthropic.Model, timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.AI.Provider)
	}
}
