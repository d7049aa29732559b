package probe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
)

// ErrChecksFailed is returned by Run when at least one property is violated.
var ErrChecksFailed = errors.New("probe checks failed")

// Run checks a running dashboard end to end.
func Run(ctx context.Context, config Config) (*Report, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	log := logger.Named("probe")
	start := time.Now()
	c := newClient(config.BaseURL, config.Timeout)

	// Step 1: Health check
	log.Info(ctx, "checking service health", logger.String("base_url", config.BaseURL))
	if err := c.health(ctx); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	// Step 2: Discover views and filter defaults
	views, err := c.views(ctx)
	if err != nil {
		return nil, err
	}
	filters, err := c.filters(ctx)
	if err != nil {
		return nil, err
	}

	// Step 3: Render every view with the default selection
	results, err := fetchAll(ctx, c, views, nil, config.Concurrency)
	if err != nil {
		return nil, err
	}

	v := &verifier{}
	for _, info := range views {
		v.verifyView(results[info.ID], info.Filtered)
		if config.Verbose {
			log.Debug(ctx, "view checked", logger.String("view", string(info.ID)), logger.Int("rows", len(results[info.ID].Rows)))
		}
	}
	v.verifyTotals(results)

	// Step 4: An empty sex selection leaves nothing to aggregate
	empty, err := fetchAll(ctx, c, views, url.Values{"sex": {""}}, config.Concurrency)
	if err != nil {
		return nil, err
	}
	for _, info := range views {
		v.verifyEmpty(empty[info.ID])
	}

	// Step 5: Narrowing the years keeps the matching part of the trend
	d := filters.Defaults
	if d.YearMax > d.YearMin {
		lo, hi := d.YearMin, d.YearMin+(d.YearMax-d.YearMin)/2
		q := url.Values{"year_min": {strconv.Itoa(lo)}, "year_max": {strconv.Itoa(hi)}}
		narrow, err := c.view(ctx, pipeline.ViewMedalTrends, q)
		if err != nil {
			return nil, err
		}
		v.verifyRangeSubset(results[pipeline.ViewMedalTrends], narrow, lo, hi)
	}

	report := &Report{
		Views:    views,
		Checks:   v.checks,
		Failures: v.failures,
		Duration: time.Since(start),
	}
	log.Info(ctx, "probe completed",
		logger.Int("views", len(views)),
		logger.Int("checks", report.Checks),
		logger.Int("failures", len(report.Failures)),
		logger.Duration("duration", report.Duration),
	)
	for _, f := range report.Failures {
		log.Warn(ctx, "check failed",
			logger.String("view", string(f.View)),
			logger.String("check", f.Check),
			logger.String("message", f.Message),
		)
	}
	if !report.OK() {
		return report, fmt.Errorf("%w: %d of %d", ErrChecksFailed, len(report.Failures), report.Checks)
	}
	return report, nil
}

// fetchAll renders every view with q, at most limit requests at a time.
func fetchAll(ctx context.Context, c *client, views []types.ViewInfo, q url.Values, limit int) (map[pipeline.ViewID]pipeline.Result, error) {
	var mu sync.Mutex
	out := make(map[pipeline.ViewID]pipeline.Result, len(views))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, info := range views {
		g.Go(func() error {
			res, err := c.view(gctx, info.ID, q)
			if err != nil {
				return fmt.Errorf("view %s: %w", info.ID, err)
			}
			mu.Lock()
			out[info.ID] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
