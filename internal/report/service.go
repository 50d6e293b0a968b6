// Package report implements the order ingestion and aggregation pipeline:
// window resolution, paginated retrieval, per-order item enrichment and the
// reduction into product and business-day rollups.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/dependency"
	"github.com/silentpro/dashboard/internal/entity"
)

// Config holds the pacing and retry knobs of the pipeline. The delays are
// required throttles against the upstream per-endpoint rate limits, not
// incidental ones: the item delay dominates the total latency of large runs.
type Config struct {
	MaxOrders       int           `mapstructure:"max_orders"`
	PageSize        int           `mapstructure:"page_size"`
	PageDelay       time.Duration `mapstructure:"page_delay"`
	ItemDelay       time.Duration `mapstructure:"item_delay"`
	ItemAttempts    int           `mapstructure:"item_attempts"`
	ItemBackoffBase time.Duration `mapstructure:"item_backoff_base"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaxOrders:       500,
		PageSize:        100,
		PageDelay:       300 * time.Millisecond,
		ItemDelay:       100 * time.Millisecond,
		ItemAttempts:    5,
		ItemBackoffBase: time.Second,
	}
}

// Service runs report pipelines. One Run is strictly sequential by design,
// the inter-call pacing is what keeps the service under the upstream rate
// limits. Concurrent runs share nothing mutable and need no locking.
type Service struct {
	c      *Config
	client dependency.OrdersClient
	cal    calendar.Calendar
	cat    *catalog.Catalog

	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a report service. A nil config uses the defaults; zero-valued
// pacing fields fall back to their defaults as well.
func New(c *Config, client dependency.OrdersClient, cal calendar.Calendar, cat *catalog.Catalog) *Service {
	dc := DefaultConfig()
	if c == nil {
		c = &dc
	}
	if c.MaxOrders == 0 {
		c.MaxOrders = dc.MaxOrders
	}
	if c.PageSize == 0 {
		c.PageSize = dc.PageSize
	}
	if c.PageDelay == 0 {
		c.PageDelay = dc.PageDelay
	}
	if c.ItemDelay == 0 {
		c.ItemDelay = dc.ItemDelay
	}
	if c.ItemAttempts <= 0 {
		c.ItemAttempts = dc.ItemAttempts
	}
	if c.ItemBackoffBase == 0 {
		c.ItemBackoffBase = dc.ItemBackoffBase
	}
	return &Service{
		c:      c,
		client: client,
		cal:    cal,
		cat:    cat,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Run executes one pipeline invocation end to end and returns either a full
// report or an error, never a partial result. A listing failure aborts the
// run; a per-order item failure degrades that order to zero items.
func (s *Service) Run(ctx context.Context, req entity.ReportRequest) (*entity.Report, error) {
	if req.DaysBack < 0 {
		return nil, fmt.Errorf("%w: daysBack must not be negative", calendar.ErrInvalidRange)
	}

	now := s.now()

	var (
		window calendar.Window
		err    error
	)
	if req.StartDate != "" || req.EndDate != "" {
		window, err = s.cal.ResolveExplicit(req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
	} else {
		window = s.cal.ResolveRelative(now, req.DaysBack)
	}

	runID := uuid.New().String()
	slog.Default().InfoContext(ctx, "report run started",
		slog.String("run_id", runID),
		slog.Time("window_start", window.Start),
		slog.Bool("open_ended", window.OpenEnded()),
		slog.String("product_filter", req.ProductSKU),
	)

	orders, err := s.fetchOrders(ctx, window)
	if err != nil {
		slog.Default().ErrorContext(ctx, "report run failed",
			slog.String("run_id", runID),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	agg := newAggregator(s.cal, s.cat, req.ProductSKU)
	for i := range orders {
		orders[i].Items = s.enrichOrder(ctx, orders[i].ID)
		agg.add(orders[i])
		// per-item endpoint throttle, applied whether enrichment
		// succeeded or not
		s.sleep(s.c.ItemDelay)
	}

	report := agg.result()
	report.DateRange = s.resolveRangeLabels(req, window, now)
	report.DaysBack = req.DaysBack
	report.IsCustomRange = req.IsCustomRange()
	report.ProductFilter = req.ProductSKU

	slog.Default().InfoContext(ctx, "report run finished",
		slog.String("run_id", runID),
		slog.Int("total_orders", report.TotalOrders),
	)
	return report, nil
}

// resolveRangeLabels renders the window boundaries as merchant-local dates.
// An open-ended window has no end instant, its end label is the current
// business day.
func (s *Service) resolveRangeLabels(req entity.ReportRequest, w calendar.Window, now time.Time) entity.DateRange {
	if req.IsCustomRange() {
		return entity.DateRange{Start: req.StartDate, End: req.EndDate}
	}
	end := s.cal.ToBusinessDay(now).String()
	if !w.OpenEnded() {
		end = s.cal.LocalDate(w.End)
	}
	return entity.DateRange{
		Start: s.cal.LocalDate(w.Start),
		End:   end,
	}
}
