package chatbot

import (
	"context"
	"errors"
	"fmt"

	"placement-prep/internal/config"

	"go.uber.org/zap"
)

const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

var ErrEmptyReply = errors.New("chat backend returned an empty reply")

// Chatbot turns a fully built prompt into the assistant's reply.
type Chatbot interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

func New(ctx context.Context, cfg config.ChatbotConfig, logger *zap.Logger) (Chatbot, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case ProviderHTTP, "":
		return NewHTTP(cfg.BaseURL, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown chatbot provider %q", cfg.Provider)
	}
}
