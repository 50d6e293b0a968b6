package report

import (
	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/entity"
)

// aggregator is the single owned accumulator of one run. Rollup entries are
// initialized on first encounter of a key; nothing here is shared across
// runs.
type aggregator struct {
	cal    calendar.Calendar
	cat    *catalog.Catalog
	filter string

	totalOrders int
	byProduct   map[string]*entity.ProductRollup
	byDate      map[string]*entity.DateRollup
	summary     entity.StatusSummary
}

func newAggregator(cal calendar.Calendar, cat *catalog.Catalog, filter string) *aggregator {
	return &aggregator{
		cal:       cal,
		cat:       cat,
		filter:    filter,
		byProduct: make(map[string]*entity.ProductRollup),
		byDate:    make(map[string]*entity.DateRollup),
	}
}

// add folds one enriched order into the rollups. The order always counts
// toward the total and its status bucket, even when the product filter
// skips every line item. Unrecognized statuses land in no bucket.
func (a *aggregator) add(order entity.Order) {
	a.totalOrders++

	switch order.Status {
	case entity.Shipped:
		a.summary.Shipped++
	case entity.Pending:
		a.summary.Pending++
	case entity.Canceled:
		a.summary.Canceled++
	}

	dateKey := a.cal.ToBusinessDay(order.PurchaseDate).String()

	for _, item := range order.Items {
		if a.filter != entity.FilterAll && item.SKU != a.filter {
			continue
		}

		name := a.cat.DisplayName(item.SKU)
		pr, ok := a.byProduct[name]
		if !ok {
			pr = &entity.ProductRollup{}
			a.byProduct[name] = pr
		}
		pr.Orders = append(pr.Orders, entity.OrderDetail{
			OrderID:  order.ID,
			Status:   order.Status,
			Quantity: item.Quantity,
			Price:    item.Price,
			Date:     dateKey,
		})
		pr.TotalUnits += item.Quantity
		pr.TotalRevenue = pr.TotalRevenue.Add(item.Revenue())

		dr, ok := a.byDate[dateKey]
		if !ok {
			dr = &entity.DateRollup{}
			a.byDate[dateKey] = dr
		}
		dr.Units += item.Quantity
		dr.Revenue = dr.Revenue.Add(item.Revenue())
	}
}

// result assembles the report core. Revenue totals are rounded to cents
// here, after all additions. The caller fills in the request echo fields
// and range labels.
func (a *aggregator) result() *entity.Report {
	for _, pr := range a.byProduct {
		pr.TotalRevenue = pr.TotalRevenue.Round(2)
	}
	for _, dr := range a.byDate {
		dr.Revenue = dr.Revenue.Round(2)
	}
	return &entity.Report{
		TotalOrders: a.totalOrders,
		ByProduct:   a.byProduct,
		ByDate:      a.byDate,
		Summary:     a.summary,
	}
}
