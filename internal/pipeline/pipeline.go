// Package pipeline sequences the extract, transform, and load stages of
// one full-refresh warehouse run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/model"
	"github.com/retaildw/retaildw/internal/transform"
)

// Extractor supplies the four source record sets.
type Extractor interface {
	Extract(ctx context.Context) (*model.SourceData, error)
}

// Store is the load collaborator: idempotent provisioning plus full
// replacement of the warehouse tables.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Replace(ctx context.Context, out *transform.Result) error
}

// Summary reports row counts from a completed run.
type Summary struct {
	Customers    int
	Products     int
	Orders       int
	OrderItems   int
	DateRows     int
	FactRows     int
	SkippedItems int
}

// Pipeline runs extract, transform, and load strictly sequentially.
type Pipeline struct {
	source Extractor
	store  Store
}

// New creates a Pipeline over the given collaborators.
func New(source Extractor, store Store) *Pipeline {
	return &Pipeline{source: source, store: store}
}

// Run executes one full-refresh load. All four output record sets are
// computed in memory before any destructive store operation begins, so a
// failure at any point leaves the prior warehouse generation intact.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	src, err := p.source.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	out, err := transform.Run(src)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	if err := p.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := p.store.Replace(ctx, out); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	summary := &Summary{
		Customers:    len(src.Customers),
		Products:     len(src.Products),
		Orders:       len(src.Orders),
		OrderItems:   len(src.Items),
		DateRows:     len(out.Dates),
		FactRows:     len(out.Facts),
		SkippedItems: out.SkippedItems,
	}

	logging.Info().
		Int("fact_rows", summary.FactRows).
		Int("skipped_items", summary.SkippedItems).
		Msg("Pipeline complete")

	return summary, nil
}
