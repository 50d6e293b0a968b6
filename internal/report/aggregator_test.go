package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/entity"
)

func newTestAggregator(filter string) *aggregator {
	return newAggregator(calendar.New(nil), catalog.New(nil), filter)
}

func TestAggregatorRevenueMath(t *testing.T) {
	agg := newTestAggregator(entity.FilterAll)

	order := testOrder("111-001", entity.Shipped, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	order.Items = []entity.OrderItem{
		testItem("VM-7EA4-DVAO", 2, "10.00"),
		testItem("VM-7EA4-DVAO", 1, "5.00"),
	}
	agg.add(order)

	rep := agg.result()

	pr := rep.ByProduct["Black Mamba Premium"]
	require.NotNil(t, pr)
	assert.Equal(t, 3, pr.TotalUnits)
	assert.True(t, pr.TotalRevenue.Equal(decimal.RequireFromString("25.00")),
		"got %s", pr.TotalRevenue)
	assert.Len(t, pr.Orders, 2, "one detail record per contributing line item")

	dr := rep.ByDate["2024-03-01"]
	require.NotNil(t, dr)
	assert.Equal(t, 3, dr.Units)
	assert.True(t, dr.Revenue.Equal(decimal.RequireFromString("25.00")))
}

func TestAggregatorStatusCounting(t *testing.T) {
	agg := newTestAggregator(entity.FilterAll)
	purchased := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	agg.add(testOrder("111-001", entity.Shipped, purchased))
	agg.add(testOrder("111-002", entity.Pending, purchased))
	agg.add(testOrder("111-003", entity.Canceled, purchased))
	agg.add(testOrder("111-004", entity.OrderStatus("Unshippable"), purchased))

	rep := agg.result()

	assert.Equal(t, 4, rep.TotalOrders, "unrecognized statuses still count toward the total")
	assert.Equal(t, entity.StatusSummary{Shipped: 1, Pending: 1, Canceled: 1}, rep.Summary)
}

func TestAggregatorProductFilter(t *testing.T) {
	agg := newTestAggregator("VM-7EA4-DVAO")

	order := testOrder("111-001", entity.Shipped, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	order.Items = []entity.OrderItem{
		testItem("VM-7EA4-DVAO", 1, "10.00"),
		testItem("5Y-T9K7-1HM1", 5, "4.00"),
	}
	agg.add(order)

	other := testOrder("111-002", entity.Pending, time.Date(2024, time.March, 1, 14, 0, 0, 0, time.UTC))
	other.Items = []entity.OrderItem{testItem("5Y-T9K7-1HM1", 2, "4.00")}
	agg.add(other)

	rep := agg.result()

	require.Contains(t, rep.ByProduct, "Black Mamba Premium")
	assert.NotContains(t, rep.ByProduct, "Black Mamba Lite", "filtered SKUs contribute nothing")
	assert.Equal(t, 1, rep.ByProduct["Black Mamba Premium"].TotalUnits)
	assert.Equal(t, 1, rep.ByDate["2024-03-01"].Units, "date rollup only sees matching items")
	assert.Equal(t, 2, rep.TotalOrders, "orders with no matching items still count in totals")
	assert.Equal(t, 1, rep.Summary.Pending)
}

func TestAggregatorUnmappedSKUPassesThrough(t *testing.T) {
	agg := newTestAggregator(entity.FilterAll)

	order := testOrder("111-001", entity.Shipped, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	order.Items = []entity.OrderItem{testItem("ZZ-NEW-SKU", 1, "7.50")}
	agg.add(order)

	assert.Contains(t, agg.result().ByProduct, "ZZ-NEW-SKU")
}

func TestAggregatorBucketsByBusinessDay(t *testing.T) {
	agg := newTestAggregator(entity.FilterAll)

	// 07:00 UTC is before the 08:00 boundary: previous business day
	early := testOrder("111-001", entity.Shipped, time.Date(2024, time.March, 2, 7, 0, 0, 0, time.UTC))
	early.Items = []entity.OrderItem{testItem("VM-7EA4-DVAO", 1, "10.00")}
	agg.add(early)

	late := testOrder("111-002", entity.Shipped, time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC))
	late.Items = []entity.OrderItem{testItem("VM-7EA4-DVAO", 1, "10.00")}
	agg.add(late)

	rep := agg.result()
	assert.Equal(t, 1, rep.ByDate["2024-03-01"].Units)
	assert.Equal(t, 1, rep.ByDate["2024-03-02"].Units)
}

func TestAggregatorIdempotent(t *testing.T) {
	build := func() *entity.Report {
		agg := newTestAggregator(entity.FilterAll)
		o1 := testOrder("111-001", entity.Shipped, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
		o1.Items = []entity.OrderItem{
			testItem("VM-7EA4-DVAO", 2, "10.00"),
			testItem("J9-H173-J5AF", 1, "19.99"),
		}
		agg.add(o1)
		o2 := testOrder("111-002", entity.Canceled, time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC))
		o2.Items = []entity.OrderItem{testItem("5Y-T9K7-1HM1", 3, "4.25")}
		agg.add(o2)
		return agg.result()
	}

	assert.Equal(t, build(), build(), "identical input reduces to identical output")
}
