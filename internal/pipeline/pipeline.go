// Package pipeline runs one fetch → normalize → dedupe → filter → aggregate
// pass over search results.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/dedupe"
	"github.com/amishk599/jobinsights/internal/filter"
	"github.com/amishk599/jobinsights/internal/model"
	"github.com/amishk599/jobinsights/internal/normalize"
)

// Outcome is the product of one run.
type Outcome struct {
	Params     model.SearchParams
	Records    []model.Record
	Result     aggregate.Result
	Fetched    int  // raw listings received
	Duplicates int  // removed by dedupe
	Filtered   int  // removed by the field filter
	Partial    bool // paging stopped on an error
}

// Pipeline owns the data-shaping steps for a single search.
type Pipeline struct {
	fetcher    model.ListingFetcher
	normalizer *normalize.Normalizer
	filter     *filter.FieldFilter
	logger     *slog.Logger
}

// New creates a pipeline wired with all its dependencies. filter may be nil.
func New(
	fetcher model.ListingFetcher,
	normalizer *normalize.Normalizer,
	filter *filter.FieldFilter,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		normalizer: normalizer,
		filter:     filter,
		logger:     logger,
	}
}

// Run fetches up to pages pages for params and shapes the results. A fetch
// that fails partway is not fatal: whatever arrived is processed. Run returns
// model.ErrNoData when nothing was fetched or nothing survived filtering.
// Cancelling ctx aborts the run even when some pages arrived.
func (p *Pipeline) Run(ctx context.Context, params model.SearchParams, pages int) (*Outcome, error) {
	raws, err := p.fetcher.FetchListings(ctx, params, pages)
	partial := false
	if err != nil {
		if !errors.Is(err, model.ErrPartialFetch) || ctx.Err() != nil {
			return nil, fmt.Errorf("fetching listings: %w", err)
		}
		partial = true
		p.logger.Warn("fetch ended early, continuing with collected listings",
			"listings", len(raws),
			"error", err,
		)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("fetched 0 listings for %q: %w", params.Query, model.ErrNoData)
	}

	records := p.normalizer.NormalizeAll(raws)
	unique := dedupe.Dedupe(records)
	kept := unique
	if p.filter != nil && p.filter.Active() {
		kept = p.filter.Apply(unique)
	}

	p.logger.Info("shaped records",
		"fetched", len(raws),
		"unique", len(unique),
		"kept", len(kept),
	)
	if len(kept) == 0 {
		return nil, fmt.Errorf("no records match filters: %w", model.ErrNoData)
	}

	return &Outcome{
		Params:     params,
		Records:    kept,
		Result:     aggregate.Aggregate(kept),
		Fetched:    len(raws),
		Duplicates: len(records) - len(unique),
		Filtered:   len(unique) - len(kept),
		Partial:    partial,
	}, nil
}

// summaryTop is how many entries of each ranking go into a Summary.
const summaryTop = 5

// Summary condenses the outcome for notifiers.
func (o *Outcome) Summary(runID string, artifacts []string, at time.Time) model.Summary {
	return model.Summary{
		RunID:        runID,
		Query:        o.Params.Query,
		Location:     o.Params.Location,
		Records:      len(o.Records),
		TopSkills:    topEntries(o.Result.TopSkills),
		TopLocations: topEntries(o.Result.TopLocations),
		TopCompanies: topEntries(o.Result.TopCompanies),
		Artifacts:    artifacts,
		GeneratedAt:  at,
	}
}

func topEntries(t aggregate.Table) []string {
	n := min(len(t), summaryTop)
	out := make([]string, 0, n)
	for _, c := range t[:n] {
		out = append(out, fmt.Sprintf("%s (%d)", c.Label, c.N))
	}
	return out
}
