package query

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/webqa-tools/bugtrack/internal/types"
)

// Stats aggregates record counts by status and severity. The nine counts
// are independent reads, so they fan out concurrently; the first failure
// cancels the rest.
func (e *Engine) Stats(ctx context.Context) (*types.Statistics, error) {
	stats := &types.Statistics{}
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int, filter types.Filter) {
		g.Go(func() error {
			n, err := e.store.CountBugs(ctx, filter)
			if err != nil {
				return err
			}
			*dst = int(n)
			return nil
		})
	}

	count(&stats.Total, types.Filter{})
	for _, c := range []struct {
		dst    *int
		status types.Status
	}{
		{&stats.Open, types.StatusOpen},
		{&stats.InProgress, types.StatusInProgress},
		{&stats.Resolved, types.StatusResolved},
		{&stats.Closed, types.StatusClosed},
	} {
		s := c.status
		count(c.dst, types.Filter{Status: &s})
	}
	for _, c := range []struct {
		dst      *int
		severity types.Severity
	}{
		{&stats.Low, types.SeverityLow},
		{&stats.Medium, types.SeverityMedium},
		{&stats.High, types.SeverityHigh},
		{&stats.Critical, types.SeverityCritical},
	} {
		s := c.severity
		count(c.dst, types.Filter{Severity: &s})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate statistics: %w", err)
	}
	return stats, nil
}
