package feed

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"newsroom/internal/domain"
	"newsroom/internal/ports"
)

const defaultFetchDelay = 500 * time.Millisecond

const untitled = "untitled"

// Collector fetches syndication feeds sequentially and normalizes their
// entries into domain articles. Fetches are paced to stay polite to upstream
// servers; the pacing does not delay the first feed or trail the last one.
type Collector struct {
	parser  *gofeed.Parser
	limiter *rate.Limiter
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.Collector = (*Collector)(nil)

// NewCollector builds a collector with the given inter-feed delay.
func NewCollector(fetchDelay time.Duration, logger *slog.Logger) *Collector {
	if fetchDelay <= 0 {
		fetchDelay = defaultFetchDelay
	}
	return &Collector{
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Every(fetchDelay), 1),
		logger:  logger,
		now:     time.Now,
	}
}

// Collect fetches every URL in order and returns the combined article list,
// newest published first. A feed that fails to fetch or parse contributes
// nothing and the remaining feeds are still processed.
func (c *Collector) Collect(ctx context.Context, urls []string) []domain.Article {
	var articles []domain.Article
	for _, url := range urls {
		if err := c.limiter.Wait(ctx); err != nil {
			break
		}

		parsed, err := c.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			c.warn("fetch feed", "url", url, "error", err)
			continue
		}

		entries := c.normalize(parsed, url)
		c.debug("feed fetched", "url", url, "entries", len(entries))
		articles = append(articles, entries...)
	}

	SortByPublished(articles)
	return articles
}

func (c *Collector) normalize(parsed *gofeed.Feed, url string) []domain.Article {
	source := strings.TrimSpace(parsed.Title)
	if source == "" {
		source = url
	}

	collected := c.now()
	out := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out = append(out, domain.Article{
			Title:     titleOf(item),
			Link:      item.Link,
			Summary:   excerptOf(item),
			Source:    source,
			Published: publishedOf(item, collected),
		})
	}
	return out
}

func titleOf(item *gofeed.Item) string {
	if title := strings.TrimSpace(item.Title); title != "" {
		return title
	}
	return untitled
}

func excerptOf(item *gofeed.Item) string {
	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	return stripHTML(raw)
}

func publishedOf(item *gofeed.Item, collected time.Time) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return collected
}

// SortByPublished orders articles newest first. The sort is stable, so an
// already-sorted slice keeps its order.
func SortByPublished(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}

func stripHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func (c *Collector) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Collector) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
