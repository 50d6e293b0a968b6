package report

import (
	"context"
	"fmt"

	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/dependency"
	"github.com/silentpro/dashboard/internal/entity"
)

// fetchOrders pages through the upstream listing for the window. The first
// page is scoped by the window, every following page only by the opaque
// continuation token. Accumulation stops when the token runs out or the
// hard order cap is reached; the cap wins and can truncate a true result
// set. Listing errors are fatal, they propagate unretried.
func (s *Service) fetchOrders(ctx context.Context, w calendar.Window) ([]entity.Order, error) {
	var all []entity.Order
	token := ""

	for {
		q := dependency.ListOrdersQuery{NextToken: token}
		if token == "" {
			q = dependency.ListOrdersQuery{
				CreatedAfter:  w.Start,
				CreatedBefore: w.End,
				PageSize:      s.c.PageSize,
			}
		}

		page, err := s.client.ListOrders(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("can't list orders: %w", err)
		}
		all = append(all, page.Orders...)

		if page.NextToken == "" || len(all) >= s.c.MaxOrders {
			break
		}

		token = page.NextToken
		// listing endpoint rate limit
		s.sleep(s.c.PageDelay)
	}

	if len(all) > s.c.MaxOrders {
		all = all[:s.c.MaxOrders]
	}
	return all, nil
}
