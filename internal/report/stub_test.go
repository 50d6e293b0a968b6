package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/dependency"
	"github.com/silentpro/dashboard/internal/entity"
)

// stubClient is an in-memory OrdersClient for pipeline tests.
type stubClient struct {
	pages    []dependency.OrderPage
	listErr  error
	queries  []dependency.ListOrdersQuery
	itemsFn  func(orderID string, call int) ([]entity.OrderItem, error)
	itemCall map[string]int
}

func (s *stubClient) ListOrders(ctx context.Context, q dependency.ListOrdersQuery) (dependency.OrderPage, error) {
	s.queries = append(s.queries, q)
	if s.listErr != nil {
		return dependency.OrderPage{}, s.listErr
	}
	idx := len(s.queries) - 1
	if idx >= len(s.pages) {
		return dependency.OrderPage{}, nil
	}
	return s.pages[idx], nil
}

func (s *stubClient) GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	if s.itemCall == nil {
		s.itemCall = make(map[string]int)
	}
	s.itemCall[orderID]++
	if s.itemsFn == nil {
		return nil, nil
	}
	return s.itemsFn(orderID, s.itemCall[orderID])
}

// newTestService wires a service with recorded sleeps and a fixed clock.
func newTestService(c *Config, client dependency.OrdersClient, now time.Time) (*Service, *[]time.Duration) {
	svc := New(c, client, calendar.New(nil), catalog.New(nil))
	svc.now = func() time.Time { return now }
	sleeps := &[]time.Duration{}
	svc.sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return svc, sleeps
}

func testOrder(id string, status entity.OrderStatus, purchased time.Time) entity.Order {
	return entity.Order{
		ID:           id,
		PurchaseDate: purchased,
		Status:       status,
	}
}

func testItem(sku string, qty int, price string) entity.OrderItem {
	return entity.OrderItem{
		SKU:      sku,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
	}
}

func syntheticPage(start, count int, token string) dependency.OrderPage {
	page := dependency.OrderPage{NextToken: token}
	purchased := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		page.Orders = append(page.Orders, testOrder(fmt.Sprintf("111-%04d", start+i), entity.Shipped, purchased))
	}
	return page
}
