package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
)

const feedA = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
  <title>Feed A</title>
  <item>
    <title>Newest</title>
    <link>http://a/2</link>
    <description><![CDATA[<p>Hello <b>world</b>,   stripped</p>]]></description>
    <pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Oldest</title>
    <link>http://a/1</link>
    <description>plain text</description>
    <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
  </item>
</channel></rss>`

const feedB = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
  <item>
    <link>http://b/1</link>
    <pubDate>Wed, 03 Jan 2024 10:00:00 GMT</pubDate>
  </item>
</channel></rss>`

func serveXML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCollectMergesReachableFeeds(t *testing.T) {
	t.Parallel()

	serverA := serveXML(t, feedA)
	serverB := serveXML(t, feedB)

	unreachable := httptest.NewServer(http.NotFoundHandler())
	unreachable.Close()

	c := NewCollector(time.Millisecond, nil)
	articles := c.Collect(context.Background(), []string{serverA.URL, unreachable.URL, serverB.URL})

	require.Len(t, articles, 3)

	// Newest published first, across feeds.
	assert.Equal(t, "untitled", articles[0].Title)
	assert.Equal(t, "Newest", articles[1].Title)
	assert.Equal(t, "Oldest", articles[2].Title)
	for i := 1; i < len(articles); i++ {
		assert.False(t, articles[i].Published.After(articles[i-1].Published))
	}
}

func TestCollectDefaultsAndStripsHTML(t *testing.T) {
	t.Parallel()

	serverA := serveXML(t, feedA)
	serverB := serveXML(t, feedB)

	c := NewCollector(time.Millisecond, nil)
	articles := c.Collect(context.Background(), []string{serverA.URL, serverB.URL})
	require.Len(t, articles, 3)

	byLink := map[string]domain.Article{}
	for _, a := range articles {
		byLink[a.Link] = a
	}

	assert.Equal(t, "Hello world, stripped", byLink["http://a/2"].Summary)
	assert.Equal(t, "Feed A", byLink["http://a/2"].Source)

	// Feed B has no channel title, so the feed URL becomes the source, and
	// its item has no title.
	assert.Equal(t, serverB.URL, byLink["http://b/1"].Source)
	assert.Equal(t, "untitled", byLink["http://b/1"].Title)
	assert.Empty(t, byLink["http://b/1"].Summary)
}

func TestCollectFallsBackToCollectionTime(t *testing.T) {
	t.Parallel()

	server := serveXML(t, `<?xml version="1.0"?><rss version="2.0"><channel>
	  <title>No Dates</title>
	  <item><title>Undated</title><link>http://n/1</link></item>
	</channel></rss>`)

	c := NewCollector(time.Millisecond, nil)
	before := time.Now()
	articles := c.Collect(context.Background(), []string{server.URL})
	after := time.Now()

	require.Len(t, articles, 1)
	assert.False(t, articles[0].Published.Before(before))
	assert.False(t, articles[0].Published.After(after))
}

func TestSortByPublishedIsIdempotent(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		{Title: "b", Published: base.AddDate(0, 0, 1)},
		{Title: "a", Published: base.AddDate(0, 0, 2)},
		{Title: "tie-1", Published: base},
		{Title: "tie-2", Published: base},
	}

	SortByPublished(articles)
	once := append([]domain.Article(nil), articles...)
	SortByPublished(articles)

	assert.Equal(t, once, articles)
	assert.Equal(t, "a", articles[0].Title)
	assert.Equal(t, "tie-1", articles[2].Title)
}

func TestCollectAllFeedsUnreachable(t *testing.T) {
	t.Parallel()

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	c := NewCollector(time.Millisecond, nil)
	articles := c.Collect(context.Background(), []string{dead.URL})
	assert.Empty(t, articles)
}
