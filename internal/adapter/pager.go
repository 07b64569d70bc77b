package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amishk599/jobinsights/internal/model"
)

// Waiter paces page requests. It is called before every page, so the first
// call should return immediately.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Pager walks search result pages in order, pausing between requests.
type Pager struct {
	pages  model.PageFetcher
	delay  Waiter
	logger *slog.Logger
}

// NewPager creates a pager over pages. delay may be nil for no pause.
func NewPager(pages model.PageFetcher, delay Waiter, logger *slog.Logger) *Pager {
	return &Pager{
		pages:  pages,
		delay:  delay,
		logger: logger,
	}
}

// FetchListings requests pages 1..n and concatenates their listings. Paging
// ends early on an empty page. A failed page also ends paging: the listings
// gathered so far are returned together with an error wrapping
// model.ErrPartialFetch.
func (p *Pager) FetchListings(ctx context.Context, params model.SearchParams, n int) ([]model.RawListing, error) {
	var listings []model.RawListing
	for page := 1; page <= n; page++ {
		if p.delay != nil {
			if err := p.delay.Wait(ctx); err != nil {
				return listings, p.stop(page, err)
			}
		}

		batch, err := p.pages.FetchPage(ctx, params, page)
		if err != nil {
			return listings, p.stop(page, err)
		}
		p.logger.Info("fetched page", "page", page, "listings", len(batch))
		if len(batch) == 0 {
			break
		}
		listings = append(listings, batch...)
	}
	return listings, nil
}

func (p *Pager) stop(page int, err error) error {
	args := []any{"page", page, "error", err}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		args = append(args, "status", httpErr.StatusCode)
		if httpErr.RetryAfter > 0 {
			args = append(args, "retry_after", httpErr.RetryAfter)
		}
	}
	p.logger.Warn("stopping fetch", args...)
	return fmt.Errorf("%w: page %d: %w", model.ErrPartialFetch, page, err)
}
