package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/ports"
)

// GitHubStore keeps documents as files in a GitHub repository, reached
// through the contents API. Updates are conditioned on the blob SHA read
// just before the write, so a concurrent edit surfaces as ErrConflict
// instead of being overwritten.
type GitHubStore struct {
	apiURL string
	repo   string
	branch string
	prefix string
	token  string
	client *http.Client
}

var _ ports.DocumentStore = (*GitHubStore)(nil)

// NewGitHubStore builds a store from configuration.
func NewGitHubStore(cfg config.StoreConfig) *GitHubStore {
	return &GitHubStore{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		repo:   cfg.Repo,
		branch: cfg.Branch,
		prefix: strings.Trim(cfg.Path, "/"),
		token:  cfg.Token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type contentsPayload struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// Get fetches and decodes the named document.
func (s *GitHubStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, _, err := s.fetch(ctx, name)
	return data, err
}

// Put writes the named document. An existing document is updated against the
// SHA it had when read; an absent one is created.
func (s *GitHubStore) Put(ctx context.Context, name string, data []byte, message string) error {
	_, sha, err := s.fetch(ctx, name)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(data),
		"branch":  s.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal contents payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.contentsURL(name, false), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("put %s: %w", name, ports.ErrConflict)
	case rateLimited(resp):
		return fmt.Errorf("put %s: %w", name, ports.ErrRateLimited)
	default:
		return fmt.Errorf("put %s: unexpected status %s: %s", name, resp.Status, readError(resp.Body))
	}
}

func (s *GitHubStore) fetch(ctx context.Context, name string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.contentsURL(name, true), nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("get %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", fmt.Errorf("get %s: %w", name, ports.ErrNotFound)
	case rateLimited(resp):
		return nil, "", fmt.Errorf("get %s: %w", name, ports.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, "", fmt.Errorf("get %s: unexpected status %s: %s", name, resp.Status, readError(resp.Body))
	}

	var payload contentsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("decode contents of %s: %w", name, err)
	}

	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("decode content of %s: %w", name, err)
	}
	return data, payload.SHA, nil
}

func (s *GitHubStore) contentsURL(name string, withRef bool) string {
	path := name
	if s.prefix != "" {
		path = s.prefix + "/" + name
	}
	u := fmt.Sprintf("%s/repos/%s/contents/%s", s.apiURL, s.repo, path)
	if withRef && s.branch != "" {
		u += "?ref=" + url.QueryEscape(s.branch)
	}
	return u
}

func (s *GitHubStore) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}

func rateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func readError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 1024))
	return strings.TrimSpace(string(raw))
}
