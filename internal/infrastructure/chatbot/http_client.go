package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	logutil "placement-prep/internal/pkg/logger"

	"go.uber.org/zap"
)

const maxLoggedBody = 512

type httpChatbot struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// NewHTTP talks to a chat server exposing POST /api/chat {message} -> {response}.
func NewHTTP(baseURL string, timeout time.Duration, logger *zap.Logger) Chatbot {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &httpChatbot{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpChatbot) Reply(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("nil chatbot client")
	}
	endpoint := c.baseURL + "/api/chat"

	b, err := json.Marshal(chatRequest{Message: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := logutil.Truncate(strings.TrimSpace(string(rb)), maxLoggedBody)
		c.logger.Warn("chat backend error", zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode), zap.String("body", bodyStr))
		return "", fmt.Errorf("chat backend failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", ErrEmptyReply
	}
	return out.Response, nil
}

var _ Chatbot = (*httpChatbot)(nil)
