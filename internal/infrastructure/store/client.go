package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"newsroom/internal/domain"
	"newsroom/internal/ports"
)

// Fixed document names used by the pipeline and the presentation shell.
const (
	FeedsDocument   = "feeds.json"
	HistoryDocument = "news_history.json"
	StatsDocument   = "stats.json"
)

// Client is typed access to the fixed documents on top of any DocumentStore.
// Loads never fail observably: an absent document, a rate-limited store, or
// a corrupt payload all yield the type-appropriate empty value, with the
// underlying condition returned alongside for callers that want to log it.
// Each load is a fresh read; there is no caching and no transaction across
// documents.
type Client struct {
	store ports.DocumentStore
}

var _ ports.Documents = (*Client)(nil)

// NewClient wraps a document store.
func NewClient(store ports.DocumentStore) *Client {
	return &Client{store: store}
}

// LoadFeeds returns the subscribed feed URLs, or an empty list.
func (c *Client) LoadFeeds(ctx context.Context) (domain.FeedList, error) {
	feeds := domain.FeedList{}
	err := c.load(ctx, FeedsDocument, &feeds)
	if feeds == nil {
		feeds = domain.FeedList{}
	}
	return feeds, err
}

// SaveFeeds persists the feed list.
func (c *Client) SaveFeeds(ctx context.Context, feeds domain.FeedList, message string) error {
	return c.save(ctx, FeedsDocument, feeds, message)
}

// LoadHistory returns the date-keyed digest history, or an empty mapping.
func (c *Client) LoadHistory(ctx context.Context) (domain.DigestHistory, error) {
	history := domain.DigestHistory{}
	err := c.load(ctx, HistoryDocument, &history)
	if history == nil {
		history = domain.DigestHistory{}
	}
	return history, err
}

// SaveHistory persists the digest history.
func (c *Client) SaveHistory(ctx context.Context, history domain.DigestHistory, message string) error {
	return c.save(ctx, HistoryDocument, history, message)
}

// LoadStats returns the visit counter, or its zero value.
func (c *Client) LoadStats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := c.load(ctx, StatsDocument, &stats)
	return stats, err
}

// SaveStats persists the visit counter.
func (c *Client) SaveStats(ctx context.Context, stats domain.Stats, message string) error {
	return c.save(ctx, StatsDocument, stats, message)
}

func (c *Client) load(ctx context.Context, name string, v any) error {
	raw, err := c.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Client) save(ctx context.Context, name string, v any, message string) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", name, err)
	}
	if err := c.store.Put(ctx, name, raw, message); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
