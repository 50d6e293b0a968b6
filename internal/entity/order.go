package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the upstream marketplace order status. Statuses outside the
// three named ones are kept on the order but counted in no summary bucket.
type OrderStatus string

const (
	Shipped  OrderStatus = "Shipped"
	Pending  OrderStatus = "Pending"
	Canceled OrderStatus = "Canceled"
)

// Order is one marketplace order as returned by the listing endpoint.
// Line items are attached later by the enrichment step and are empty until
// then. Orders live for the duration of a single report run.
type Order struct {
	ID           string
	PurchaseDate time.Time
	Status       OrderStatus
	Items        []OrderItem
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	SKU      string
	Quantity int
	Price    decimal.Decimal
}

// Revenue returns price multiplied by quantity for this line item.
func (i OrderItem) Revenue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
