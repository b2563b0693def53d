package ports

import (
	"context"
	"errors"
	"time"

	"newsroom/internal/domain"
)

// ErrNotFound marks a document that does not exist in the backing store.
var ErrNotFound = errors.New("document not found")

// ErrRateLimited marks a store call refused because the remote API quota is
// exhausted.
var ErrRateLimited = errors.New("store rate limit exceeded")

// ErrConflict marks a write rejected because the document moved past the
// revision the write was conditioned on.
var ErrConflict = errors.New("document revision conflict")

// Collector gathers normalized articles from syndication feeds. A feed that
// cannot be fetched or parsed contributes zero articles; it never aborts the
// collection of the remaining feeds.
type Collector interface {
	Collect(ctx context.Context, urls []string) []domain.Article
}

// DocumentStore reads and writes named JSON documents against a local
// directory or a remote version-controlled repository. Get returns
// ErrNotFound for absent documents and ErrRateLimited when the remote quota
// is exhausted. Put on the remote variant is revision-conditioned and returns
// ErrConflict instead of silently overwriting a concurrent edit.
type DocumentStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte, message string) error
}

// Documents is typed access to the three fixed documents the system keeps.
// Loads never fail observably: on absence or rate limit they return the
// type-appropriate empty value together with the underlying condition, which
// callers may log and otherwise ignore.
type Documents interface {
	LoadFeeds(ctx context.Context) (domain.FeedList, error)
	SaveFeeds(ctx context.Context, feeds domain.FeedList, message string) error
	LoadHistory(ctx context.Context) (domain.DigestHistory, error)
	SaveHistory(ctx context.Context, history domain.DigestHistory, message string) error
	LoadStats(ctx context.Context) (domain.Stats, error)
	SaveStats(ctx context.Context, stats domain.Stats, message string) error
}

// Summarizer turns a batch of articles into a markdown report.
type Summarizer interface {
	Summarize(ctx context.Context, articles []domain.Article) (string, error)
}

// Notifier pushes a finished digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
