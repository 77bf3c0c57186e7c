package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blogcore/internal/pkg/config"
)

// Summarizer produces a short summary for a piece of content. The remote
// generator may be slow or down; callers degrade to Fallback instead of
// failing the user-visible operation.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Name() string
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// HTTPSummarizer calls the configured generator endpoint.
type HTTPSummarizer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSummarizer builds the client from config.
func NewHTTPSummarizer() *HTTPSummarizer {
	cfg := config.GlobalConfig.Summary
	return &HTTPSummarizer{
		endpoint: cfg.Endpoint,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *HTTPSummarizer) Name() string { return "remote" }

// Summarize posts the text to the generator and returns its summary.
func (s *HTTPSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("summarizer endpoint not configured")
	}

	body, err := json.Marshal(summarizeRequest{Text: text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer returned status %d", resp.StatusCode)
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", fmt.Errorf("summarizer returned empty summary")
	}

	return out.Summary, nil
}

// Fallback returns the first maxChars runes of whitespace-normalized
// text. Cheap and local; used whenever the generator fails.
func Fallback(text string, maxChars int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= maxChars {
		return normalized
	}
	return strings.TrimSpace(string(runes[:maxChars])) + "…"
}
