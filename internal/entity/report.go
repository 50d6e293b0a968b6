package entity

import (
	"github.com/shopspring/decimal"
)

// ReportRequest is the single input contract of a report run. Relative and
// explicit mode are mutually exclusive: when both dates are set they win,
// when only one is set the request is invalid.
type ReportRequest struct {
	DaysBack   int    `json:"daysBack" valid:"-"`
	ProductSKU string `json:"productSku" valid:"-"`
	StartDate  string `json:"startDate" valid:"matches(^[0-9]{4}-[0-9]{2}-[0-9]{2}$),optional"`
	EndDate    string `json:"endDate" valid:"matches(^[0-9]{4}-[0-9]{2}-[0-9]{2}$),optional"`
}

// FilterAll is the product filter sentinel matching every SKU.
const FilterAll = "ALL"

// IsCustomRange reports whether the request selects an explicit date range.
func (r ReportRequest) IsCustomRange() bool {
	return r.StartDate != "" && r.EndDate != ""
}

// OrderDetail is one order's contribution to a product rollup.
type OrderDetail struct {
	OrderID  string          `json:"orderId"`
	Status   OrderStatus     `json:"status"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date"`
}

// ProductRollup accumulates one product's orders, units and revenue.
type ProductRollup struct {
	Orders       []OrderDetail   `json:"orders"`
	TotalUnits   int             `json:"totalUnits"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// DateRollup accumulates units and revenue of one business day across all
// products.
type DateRollup struct {
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatusSummary counts orders per recognized status.
type StatusSummary struct {
	Shipped  int `json:"shipped"`
	Pending  int `json:"pending"`
	Canceled int `json:"canceled"`
}

// DateRange is the resolved range in merchant-local dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is the aggregate output of one pipeline run. It is built once per
// invocation and never mutated or shared afterwards.
type Report struct {
	DateRange     DateRange                 `json:"dateRange"`
	DaysBack      int                       `json:"daysBack"`
	IsCustomRange bool                      `json:"isCustomRange"`
	ProductFilter string                    `json:"productFilter"`
	TotalOrders   int                       `json:"totalOrders"`
	ByProduct     map[string]*ProductRollup `json:"byProduct"`
	ByDate        map[string]*DateRollup    `json:"byDate"`
	Summary       StatusSummary             `json:"summary"`
}
