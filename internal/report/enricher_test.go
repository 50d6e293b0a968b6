package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silentpro/dashboard/internal/entity"
)

func TestEnrichOrderRetriesWithBackoff(t *testing.T) {
	items := []entity.OrderItem{testItem("VM-7EA4-DVAO", 1, "10.00")}
	client := &stubClient{
		itemsFn: func(orderID string, call int) ([]entity.OrderItem, error) {
			if call <= 4 {
				return nil, errors.New("throttled")
			}
			return items, nil
		},
	}
	svc, sleeps := newTestService(nil, client, time.Now())

	got := svc.enrichOrder(context.Background(), "111-001")

	assert.Equal(t, items, got, "eventual success's items are returned")
	assert.Equal(t, 5, client.itemCall["111-001"])
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, *sleeps, "doubling backoff before each retry")
}

func TestEnrichOrderExhaustedRetriesDegradeToEmpty(t *testing.T) {
	client := &stubClient{
		itemsFn: func(orderID string, call int) ([]entity.OrderItem, error) {
			return nil, errors.New("still throttled")
		},
	}
	svc, sleeps := newTestService(nil, client, time.Now())

	got := svc.enrichOrder(context.Background(), "111-002")

	assert.Empty(t, got, "permanent failure yields an empty item set, not an error")
	assert.Equal(t, 5, client.itemCall["111-002"])
	assert.Len(t, *sleeps, 4, "no backoff wait after the final failed attempt")
}

func TestEnrichOrderNegativeAttemptsClampedToDefault(t *testing.T) {
	client := &stubClient{
		itemsFn: func(orderID string, call int) ([]entity.OrderItem, error) {
			return nil, errors.New("throttled")
		},
	}
	svc, _ := newTestService(&Config{ItemAttempts: -3}, client, time.Now())

	got := svc.enrichOrder(context.Background(), "111-004")

	assert.Empty(t, got)
	assert.Equal(t, 5, client.itemCall["111-004"], "a nonsensical attempt count falls back to the default")
}

func TestEnrichOrderFirstAttemptSuccess(t *testing.T) {
	client := &stubClient{
		itemsFn: func(orderID string, call int) ([]entity.OrderItem, error) {
			return []entity.OrderItem{testItem("5Y-T9K7-1HM1", 2, "5.00")}, nil
		},
	}
	svc, sleeps := newTestService(nil, client, time.Now())

	got := svc.enrichOrder(context.Background(), "111-003")

	require.Len(t, got, 1)
	assert.Empty(t, *sleeps, "no backoff on a clean first attempt")
}
