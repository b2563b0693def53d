package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
)

func TestFeedServiceAddAndRemove(t *testing.T) {
	t.Parallel()

	docs := newMemDocuments()
	svc := NewFeedService(docs)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "http://a/rss"))
	require.NoError(t, svc.Add(ctx, "  https://b/rss  "))
	assert.Equal(t, domain.FeedList{"http://a/rss", "https://b/rss"}, svc.List(ctx))

	assert.ErrorIs(t, svc.Add(ctx, "http://a/rss"), ErrDuplicateFeed)
	assert.ErrorIs(t, svc.Add(ctx, ""), ErrInvalidFeedURL)
	assert.ErrorIs(t, svc.Add(ctx, "not a url"), ErrInvalidFeedURL)
	assert.ErrorIs(t, svc.Add(ctx, "ftp://a/rss"), ErrInvalidFeedURL)

	require.NoError(t, svc.Remove(ctx, "http://a/rss"))
	assert.Equal(t, domain.FeedList{"https://b/rss"}, svc.List(ctx))

	assert.ErrorIs(t, svc.Remove(ctx, "http://a/rss"), ErrUnknownFeed)
}

func TestStatsServiceRecordVisit(t *testing.T) {
	t.Parallel()

	docs := newMemDocuments()
	svc := NewStatsService(docs)
	stamp := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	stats, err := svc.RecordVisit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Visits)
	assert.Equal(t, stamp, stats.LastUpdated)

	stats, err = svc.RecordVisit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Visits)
	assert.Equal(t, stats, svc.Current(context.Background()))
}
