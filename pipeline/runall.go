package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jwalczak/menuscan"
)

// DefaultConcurrency bounds how many restaurants are scraped at once.
const DefaultConcurrency = 4

// SiteResult pairs a site config with its scrape outcome.
type SiteResult struct {
	Site   *menuscan.SiteConfig
	Result *Result
	Err    error
}

// RunAll scrapes independent restaurants concurrently, up to the given
// limit (DefaultConcurrency when limit <= 0). Results preserve the input
// order. Per-site errors are recorded in the corresponding SiteResult;
// RunAll itself only errors when the context is canceled.
func (p *Pipeline) RunAll(ctx context.Context, sites []*menuscan.SiteConfig, limit int) ([]SiteResult, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]SiteResult, len(sites))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, site := range sites {
		g.Go(func() error {
			res, err := p.Run(ctx, site)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = SiteResult{Site: site, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
