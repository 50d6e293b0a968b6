package report

import (
	"context"
	"log/slog"

	"github.com/silentpro/dashboard/internal/entity"
)

// enrichOrder fetches the line items of one order with exponential backoff:
// up to ItemAttempts attempts, waiting base, 2×base, 4×base, ... before
// each retry. There is no wait after the final failed attempt. Exhausted
// retries degrade the order to an empty item set with a warning, a single
// bad order never aborts the run. The "failed" and "legitimately empty"
// cases stay distinguishable through the log.
func (s *Service) enrichOrder(ctx context.Context, orderID string) []entity.OrderItem {
	var lastErr error
	for attempt := 0; attempt < s.c.ItemAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(s.c.ItemBackoffBase << uint(attempt-1))
		}
		items, err := s.client.GetOrderItems(ctx, orderID)
		if err == nil {
			return items
		}
		lastErr = err
	}

	slog.Default().WarnContext(ctx, "can't fetch order items, order counted with zero items",
		slog.String("order_id", orderID),
		slog.Int("attempts", s.c.ItemAttempts),
		slog.String("err", lastErr.Error()),
	)
	return nil
}
