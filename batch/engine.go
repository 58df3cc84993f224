// Package batch drives machine translation of pending strings. Batches run
// sequentially with a fixed pause between provider calls; a failed item is
// recorded and skipped so one bad string never blocks the rest.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ZaguanLabs/gotlmem"
	"github.com/ZaguanLabs/gotlmem/provider"
)

// DefaultBatchLimit is the number of pending strings one batch picks up.
const DefaultBatchLimit = 10

// DefaultDelay is the pause between consecutive provider calls.
const DefaultDelay = 500 * time.Millisecond

// ErrStalled is returned by RunAll when a full pass translated nothing and
// every attempt failed, so further passes cannot make progress.
var ErrStalled = errors.New("translation stalled: no progress and all attempts failed")

// Memory is the slice of the translation store the engine needs.
type Memory interface {
	PendingStrings(ctx context.Context, lang string, limit int) ([]gotlmem.TranslatableString, error)
	MarkTranslated(ctx context.Context, id int64, translated string) error
	CountPending(ctx context.Context, lang string) (int, error)
}

// ItemError records one string that failed to translate in a batch.
type ItemError struct {
	ID   int64
	Text string
	Err  error
}

// Result summarizes one batch (or one full run).
type Result struct {
	Translated int
	Remaining  int
	Errors     []ItemError
}

// Engine translates pending strings for one target language.
type Engine struct {
	memory   Memory
	provider provider.Provider
	lang     string
	limit    int
	delay    time.Duration
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBatchLimit sets how many pending strings one batch picks up.
func WithBatchLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithDelay sets the pause between consecutive provider calls.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine for one target language.
func NewEngine(memory Memory, p provider.Provider, lang string, opts ...Option) *Engine {
	e := &Engine{
		memory:   memory,
		provider: p,
		lang:     lang,
		limit:    DefaultBatchLimit,
		delay:    DefaultDelay,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunBatch translates one batch of pending strings, oldest first. Items are
// processed strictly in sequence with the configured pause between provider
// calls; the pause is skipped after the last item. A per-item failure is
// recorded in the result and processing continues. A provider configuration
// error aborts the whole batch since no item can succeed without a
// credential.
func (e *Engine) RunBatch(ctx context.Context) (*Result, error) {
	pending, err := e.memory.PendingStrings(ctx, e.lang, e.limit)
	if err != nil {
		return nil, fmt.Errorf("loading pending strings: %w", err)
	}

	res := &Result{}
	for i, item := range pending {
		translated, err := e.provider.Translate(ctx, item.Original, e.lang)
		switch {
		case gotlmem.IsConfigError(err):
			return nil, err
		case err != nil:
			e.logger.Warn("translation failed",
				"id", item.ID, "lang", e.lang, "error", err)
			res.Errors = append(res.Errors, ItemError{ID: item.ID, Text: item.Original, Err: err})
		default:
			if err := e.memory.MarkTranslated(ctx, item.ID, translated); err != nil {
				return nil, fmt.Errorf("saving translation for %d: %w", item.ID, err)
			}
			res.Translated++
		}

		if i < len(pending)-1 {
			if err := e.pause(ctx); err != nil {
				return nil, err
			}
		}
	}

	res.Remaining, err = e.memory.CountPending(ctx, e.lang)
	if err != nil {
		return nil, fmt.Errorf("counting pending: %w", err)
	}

	e.logger.Info("batch finished",
		"lang", e.lang,
		"translated", res.Translated,
		"failed", len(res.Errors),
		"remaining", res.Remaining)

	return res, nil
}

// RunAll runs batches until no pending strings remain. After each batch the
// optional progress callback receives the batch result. When a batch makes
// zero progress and every attempt failed, RunAll stops with ErrStalled
// instead of looping over the same broken items forever.
func (e *Engine) RunAll(ctx context.Context, progress func(*Result)) (*Result, error) {
	total := &Result{}
	for {
		res, err := e.RunBatch(ctx)
		if err != nil {
			return total, err
		}

		total.Translated += res.Translated
		total.Errors = append(total.Errors, res.Errors...)
		total.Remaining = res.Remaining

		if progress != nil {
			progress(res)
		}

		if res.Remaining == 0 {
			return total, nil
		}
		if res.Translated == 0 && len(res.Errors) > 0 {
			return total, ErrStalled
		}

		if err := e.pause(ctx); err != nil {
			return total, err
		}
	}
}

func (e *Engine) pause(ctx context.Context) error {
	if e.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
