// Package spapi is the marketplace Orders API client. Token issuance and
// credential exchange happen outside this service, the client only carries
// a pre-issued access token.
package spapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/silentpro/dashboard/internal/dependency"
	"github.com/silentpro/dashboard/internal/entity"
)

const (
	listOrdersPath = "orders/v0/orders"
	orderItemsPath = "orders/v0/orders/{orderId}/orderItems"
)

// Config holds the upstream endpoint and credentials.
type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	AccessToken   string        `mapstructure:"access_token"`
	MarketplaceID string        `mapstructure:"marketplace_id"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
}

// Client talks to the marketplace Orders API.
type Client struct {
	c   *Config
	cli *resty.Client
}

// New creates a new orders client.
func New(c *Config) *Client {
	timeout := c.HTTPTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	cli := resty.New()
	cli.SetBaseURL(c.BaseURL)
	cli.SetTimeout(timeout)
	cli.SetHeader("x-amzn-Access-Token", c.AccessToken)

	return &Client{
		c:   c,
		cli: cli,
	}
}

// ListOrders fetches one page of orders. The first page is scoped by the
// created window; follow-up pages carry only the continuation token, the
// upstream rejects a token combined with window parameters.
func (client *Client) ListOrders(ctx context.Context, q dependency.ListOrdersQuery) (dependency.OrderPage, error) {
	req := client.cli.R().SetContext(ctx)

	if q.NextToken != "" {
		req.SetQueryParam("NextToken", q.NextToken)
	} else {
		req.SetQueryParam("MarketplaceIds", client.c.MarketplaceID)
		req.SetQueryParam("CreatedAfter", q.CreatedAfter.UTC().Format(time.RFC3339))
		req.SetQueryParam("MaxResultsPerPage", strconv.Itoa(q.PageSize))
		if !q.CreatedBefore.IsZero() {
			req.SetQueryParam("CreatedBefore", q.CreatedBefore.UTC().Format(time.RFC3339))
		}
	}

	resp, err := req.Get(listOrdersPath)
	if err != nil {
		return dependency.OrderPage{}, fmt.Errorf("order listing request failed: %w", err)
	}
	if resp.IsError() {
		return dependency.OrderPage{}, fmt.Errorf("order listing failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	var res listOrdersResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return dependency.OrderPage{}, fmt.Errorf("can't unmarshal order listing response: %w : body: %v", err, resp.String())
	}

	orders := make([]entity.Order, 0, len(res.Payload.Orders))
	for _, wo := range res.Payload.Orders {
		o, err := wo.toEntity()
		if err != nil {
			return dependency.OrderPage{}, err
		}
		orders = append(orders, o)
	}

	return dependency.OrderPage{
		Orders:    orders,
		NextToken: res.Payload.NextToken,
	}, nil
}

// GetOrderItems fetches the line items of one order.
func (client *Client) GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	resp, err := client.cli.R().
		SetContext(ctx).
		SetPathParam("orderId", orderID).
		Get(orderItemsPath)
	if err != nil {
		return nil, fmt.Errorf("order items request failed for order %s: %w", orderID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("order items request for order %s failed with status %d: %s", orderID, resp.StatusCode(), resp.String())
	}

	var res orderItemsResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return nil, fmt.Errorf("can't unmarshal order items response: %w : body: %v", err, resp.String())
	}

	items := make([]entity.OrderItem, 0, len(res.Payload.OrderItems))
	for _, wi := range res.Payload.OrderItems {
		items = append(items, wi.toEntity())
	}
	return items, nil
}
