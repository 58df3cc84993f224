// Package reconcile removes translation memory entries whose source content
// no longer exists.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ZaguanLabs/gotlmem/content"
	"github.com/ZaguanLabs/gotlmem/store"
)

// Result summarizes one cleanup pass.
type Result struct {
	LocationsRemoved int64 `json:"locations_removed"`
	StringsRemoved   int64 `json:"strings_removed"`
}

// Reconciler finds and removes orphaned memory entries. A location is
// orphaned when its content item was deleted or trashed; a string is
// orphaned when all its locations are gone.
type Reconciler struct {
	memory  *store.Store
	content content.Repository
	logger  *slog.Logger
}

// New creates a Reconciler.
func New(memory *store.Store, repo content.Repository, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{memory: memory, content: repo, logger: logger}
}

// Count returns the number of orphaned locations without removing anything.
func (r *Reconciler) Count(ctx context.Context) (int, error) {
	refs, err := r.memory.SourceRefs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing source refs: %w", err)
	}

	total := 0
	for _, ref := range refs {
		live, err := r.content.Live(ctx, ref.SourceKind, ref.SourceID)
		if err != nil {
			return 0, fmt.Errorf("resolving %s %d: %w", ref.SourceKind, ref.SourceID, err)
		}
		if !live {
			total += ref.Locations
		}
	}
	return total, nil
}

// Clear deletes orphaned locations, then sweeps strings left with zero
// locations. Shared strings that still have one live location survive.
// Idempotent; a second run removes nothing.
func (r *Reconciler) Clear(ctx context.Context) (*Result, error) {
	refs, err := r.memory.SourceRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing source refs: %w", err)
	}

	res := &Result{}
	for _, ref := range refs {
		live, err := r.content.Live(ctx, ref.SourceKind, ref.SourceID)
		if err != nil {
			return nil, fmt.Errorf("resolving %s %d: %w", ref.SourceKind, ref.SourceID, err)
		}
		if live {
			continue
		}
		n, err := r.memory.DeleteLocationsBySource(ctx, ref.SourceKind, ref.SourceID)
		if err != nil {
			return nil, err
		}
		res.LocationsRemoved += n
	}

	swept, err := r.memory.SweepOrphanStrings(ctx)
	if err != nil {
		return nil, err
	}
	res.StringsRemoved = swept

	r.logger.Info("orphan cleanup finished",
		"locations_removed", res.LocationsRemoved,
		"strings_removed", res.StringsRemoved)
	return res, nil
}
