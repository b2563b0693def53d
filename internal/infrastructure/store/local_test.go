package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
)

func TestClientDefaultsOnAbsentDocuments(t *testing.T) {
	t.Parallel()

	client := NewClient(NewLocalStore(t.TempDir()))
	ctx := context.Background()

	feeds, err := client.LoadFeeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.FeedList{}, feeds)

	history, err := client.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DigestHistory{}, history)

	stats, err := client.LoadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, stats)
}

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()

	client := NewClient(NewLocalStore(t.TempDir()))
	ctx := context.Background()

	feeds := domain.FeedList{"http://a/rss", "http://b/rss"}
	require.NoError(t, client.SaveFeeds(ctx, feeds, "add feeds"))

	history := domain.DigestHistory{"2024-01-04": "# digest"}
	require.NoError(t, client.SaveHistory(ctx, history, "digest for 2024-01-04"))

	loadedFeeds, err := client.LoadFeeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, feeds, loadedFeeds)

	loadedHistory, err := client.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, history, loadedHistory)
}

func TestLocalStoreWritesPrettyJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	client := NewClient(NewLocalStore(dir))

	require.NoError(t, client.SaveFeeds(context.Background(), domain.FeedList{"http://a/rss"}, ""))

	raw, err := os.ReadFile(filepath.Join(dir, FeedsDocument))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    ")
}

func TestClientRecoversFromCorruptDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FeedsDocument), []byte("{not json"), 0o644))

	feeds, err := NewClient(NewLocalStore(dir)).LoadFeeds(context.Background())
	assert.Error(t, err)
	assert.Equal(t, domain.FeedList{}, feeds)
}

func TestLocalStoreIgnoresPathTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewLocalStore(dir)
	require.NoError(t, s.Put(context.Background(), "../escape.json", []byte("{}"), ""))

	_, err := os.Stat(filepath.Join(dir, "escape.json"))
	assert.NoError(t, err)
}
