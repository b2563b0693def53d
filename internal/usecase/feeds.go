package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"newsroom/internal/domain"
	"newsroom/internal/ports"
)

// Feed administration failures surfaced to the presentation shell.
var (
	ErrInvalidFeedURL = errors.New("invalid feed url")
	ErrDuplicateFeed  = errors.New("feed already registered")
	ErrUnknownFeed    = errors.New("feed not registered")
)

// FeedService manages the subscribed feed list.
type FeedService struct {
	documents ports.Documents
}

// NewFeedService wires the document layer.
func NewFeedService(documents ports.Documents) *FeedService {
	return &FeedService{documents: documents}
}

// List returns the current feed list.
func (s *FeedService) List(ctx context.Context) domain.FeedList {
	feeds, _ := s.documents.LoadFeeds(ctx)
	return feeds
}

// Add subscribes a new feed URL, preserving insertion order and rejecting
// duplicates.
func (s *FeedService) Add(ctx context.Context, rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if !validFeedURL(rawURL) {
		return ErrInvalidFeedURL
	}

	feeds, err := s.documents.LoadFeeds(ctx)
	if err != nil {
		return err
	}
	if feeds.Contains(rawURL) {
		return ErrDuplicateFeed
	}

	return s.documents.SaveFeeds(ctx, append(feeds, rawURL), "add feed "+rawURL)
}

// Remove unsubscribes a feed URL.
func (s *FeedService) Remove(ctx context.Context, rawURL string) error {
	feeds, err := s.documents.LoadFeeds(ctx)
	if err != nil {
		return err
	}
	if !feeds.Contains(rawURL) {
		return ErrUnknownFeed
	}

	return s.documents.SaveFeeds(ctx, feeds.Without(rawURL), "remove feed "+rawURL)
}

func validFeedURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
