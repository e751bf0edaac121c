package judge

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

	"placement-prep/internal/config"
	logutil "placement-prep/internal/pkg/logger"

	"go.uber.org/zap"
)

const (
	noOutput      = "No output."
	maxLoggedBody = 512
)

// Request is a single program run against one test case.
type Request struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
}

// Result is the judge verdict reduced to what the platform stores.
type Result struct {
	Status string
	Output string
}

type Client interface {
	Execute(ctx context.Context, req Request) (Result, error)
}

type judge0Client struct {
	baseURL string
	host    string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

type submissionRequest struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

type submissionResponse struct {
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Status        *struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

func NewJudge0Client(cfg config.JudgeConfig, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &judge0Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		host:    strings.TrimSpace(cfg.RapidAPIHost),
		apiKey:  cfg.RapidAPIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *judge0Client) Execute(ctx context.Context, in Request) (Result, error) {
	if c == nil || c.client == nil {
		return Result{}, errors.New("nil judge client")
	}
	endpoint := c.baseURL + "/submissions?base64_encoded=false&wait=true"

	b, err := json.Marshal(submissionRequest{
		SourceCode:     in.SourceCode,
		LanguageID:     in.LanguageID,
		Stdin:          in.Stdin,
		ExpectedOutput: in.ExpectedOutput,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.host != "" {
		req.Header.Set("X-RapidAPI-Host", c.host)
	}
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := logutil.Truncate(strings.TrimSpace(string(rb)), maxLoggedBody)
		c.logger.Warn("judge submission failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", bodyStr),
		)
		return Result{}, fmt.Errorf("judge submission failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var out submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode judge response: %w", err)
	}
	return out.result(), nil
}

func (r submissionResponse) result() Result {
	status := "Error"
	if r.Status != nil && r.Status.Description != "" {
		status = r.Status.Description
	}
	return Result{Status: status, Output: firstNonEmpty(r.Stdout, r.Stderr, r.CompileOutput)}
}

func firstNonEmpty(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return noOutput
}

var _ Client = (*judge0Client)(nil)
