package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/domain"
	"newsroom/internal/ports"
)

// Pipeline precondition failures. Both abort the run before any write.
var (
	ErrNoFeeds    = errors.New("no feeds configured")
	ErrNoArticles = errors.New("no articles collected")
)

// Progress is a discrete checkpoint reported while a run executes.
type Progress struct {
	RunID   string `json:"run_id"`
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
}

// RunResult describes a finished (or aborted) pipeline run.
type RunResult struct {
	RunID    string `json:"run_id"`
	Date     string `json:"date"`
	Articles int    `json:"articles"`
	Digest   string `json:"digest"`
}

// PipelineDeps wires the driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Documents  ports.Documents
	Collector  ports.Collector
	Summarizer ports.Summarizer
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// Pipeline implements the feed-to-digest workflow: load feeds, collect
// articles, summarize, persist under today's date key. Runs are synchronous
// and uncoordinated; two concurrent runs on the same date resolve as
// last-write-wins.
type Pipeline struct {
	documents  ports.Documents
	collector  ports.Collector
	summarizer ports.Summarizer
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		documents:  deps.Documents,
		collector:  deps.Collector,
		summarizer: deps.Summarizer,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
	}
}

// Run executes a single pipeline pass for the given day, reporting progress
// checkpoints through report (which may be nil). A summarization failure is
// recorded as the digest content itself; only a failed history save is a
// terminal error.
func (p *Pipeline) Run(ctx context.Context, day time.Time, report func(Progress)) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString(), Date: domain.DateKey(day)}
	step := func(stage string, percent int) {
		if report != nil {
			report(Progress{RunID: result.RunID, Stage: stage, Percent: percent})
		}
	}

	feeds, err := p.documents.LoadFeeds(ctx)
	if err != nil {
		p.warn("load feeds", "error", err)
	}
	if len(feeds) == 0 {
		return result, ErrNoFeeds
	}

	step("collecting", 20)
	articles := p.collector.Collect(ctx, feeds)
	result.Articles = len(articles)
	if len(articles) == 0 {
		return result, ErrNoArticles
	}

	step("summarizing", 60)
	digest, err := p.summarizer.Summarize(ctx, articles)
	if err != nil {
		p.warn("summarize", "error", err)
		digest = failureDigest(err)
	}
	result.Digest = digest

	step("saving", 90)
	history, err := p.documents.LoadHistory(ctx)
	if err != nil {
		p.warn("load history", "error", err)
	}
	history[result.Date] = digest
	if err := p.documents.SaveHistory(ctx, history, "digest for "+result.Date); err != nil {
		return result, fmt.Errorf("save digest: %w", err)
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, digest); err != nil {
			p.warn("publish digest", "error", err)
		}
	}

	step("done", 100)
	return result, nil
}

// failureDigest records a summarization failure as the persisted digest, so
// a failed run is visible in the history rather than silently absent.
func failureDigest(err error) string {
	return fmt.Sprintf("An error occurred during AI analysis: %v", err)
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
