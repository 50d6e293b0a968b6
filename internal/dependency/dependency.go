package dependency

import (
	"context"
	"time"

	"github.com/silentpro/dashboard/internal/entity"
)

type (
	// ListOrdersQuery scopes one page of the upstream order listing. The
	// first page is scoped by the created window; once NextToken is set the
	// window is implicit in the token and the other fields are ignored.
	ListOrdersQuery struct {
		CreatedAfter  time.Time
		CreatedBefore time.Time // zero means open-ended
		PageSize      int
		NextToken     string
	}

	// OrderPage is one page of listed orders plus the continuation token,
	// empty when the listing is exhausted.
	OrderPage struct {
		Orders    []entity.Order
		NextToken string
	}

	// OrdersClient is the upstream marketplace order service. Both calls
	// are authenticated externally; any error from ListOrders is fatal for
	// a run while GetOrderItems errors are retried by the caller.
	OrdersClient interface {
		ListOrders(ctx context.Context, q ListOrdersQuery) (OrderPage, error)
		GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error)
	}

	// ReportRunner executes one report pipeline invocation.
	ReportRunner interface {
		Run(ctx context.Context, req entity.ReportRequest) (*entity.Report, error)
	}
)
