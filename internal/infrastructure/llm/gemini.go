package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/domain"
	"newsroom/internal/ports"
)

// EmptyInputDigest is returned without contacting the service when there is
// nothing to summarize.
const EmptyInputDigest = "There is no news to analyze."

// GeminiSummarizer implements ports.Summarizer against the Gemini
// generateContent API.
type GeminiSummarizer struct {
	endpoint string
	apiKey   string
	models   []string
	language string
	client   *http.Client
}

var _ ports.Summarizer = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer builds a summarizer from configuration.
func NewGeminiSummarizer(cfg config.GeminiConfig) *GeminiSummarizer {
	return &GeminiSummarizer{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		models:   cfg.Models,
		language: cfg.Language,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Summarize renders the bounded prompt and asks the first available model for
// a markdown report. Empty input short-circuits to EmptyInputDigest.
func (g *GeminiSummarizer) Summarize(ctx context.Context, articles []domain.Article) (string, error) {
	if len(articles) == 0 {
		return EmptyInputDigest, nil
	}

	model, err := SelectModel(ctx, g.models, g.modelAvailable)
	if err != nil {
		return "", fmt.Errorf("select model: %w", err)
	}

	return g.generate(ctx, model, BuildPrompt(articles, g.language))
}

func (g *GeminiSummarizer) modelAvailable(ctx context.Context, model string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"/models/"+model, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

func (g *GeminiSummarizer) generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
