package spapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/silentpro/dashboard/internal/entity"
)

// Wire shapes of the marketplace Orders API. Field names follow the
// upstream JSON, money amounts arrive as strings.

type listOrdersResponse struct {
	Payload struct {
		Orders    []wireOrder `json:"Orders"`
		NextToken string      `json:"NextToken"`
	} `json:"payload"`
}

type wireOrder struct {
	AmazonOrderID string `json:"AmazonOrderId"`
	PurchaseDate  string `json:"PurchaseDate"`
	OrderStatus   string `json:"OrderStatus"`
}

type orderItemsResponse struct {
	Payload struct {
		OrderItems []wireOrderItem `json:"OrderItems"`
	} `json:"payload"`
}

type wireOrderItem struct {
	SellerSKU       string     `json:"SellerSKU"`
	QuantityOrdered *int       `json:"QuantityOrdered"`
	ItemPrice       *wireMoney `json:"ItemPrice"`
}

type wireMoney struct {
	Amount       string `json:"Amount"`
	CurrencyCode string `json:"CurrencyCode"`
}

func (o wireOrder) toEntity() (entity.Order, error) {
	purchased, err := time.Parse(time.RFC3339, o.PurchaseDate)
	if err != nil {
		return entity.Order{}, fmt.Errorf("can't parse purchase date of order %s: %w", o.AmazonOrderID, err)
	}
	return entity.Order{
		ID:           o.AmazonOrderID,
		PurchaseDate: purchased.UTC(),
		Status:       entity.OrderStatus(o.OrderStatus),
	}, nil
}

// toEntity never fails: a missing quantity defaults to 1, a missing or
// malformed price to 0.
func (i wireOrderItem) toEntity() entity.OrderItem {
	qty := 1
	if i.QuantityOrdered != nil {
		qty = *i.QuantityOrdered
	}
	price := decimal.Zero
	if i.ItemPrice != nil {
		if p, err := decimal.NewFromString(i.ItemPrice.Amount); err == nil {
			price = p
		}
	}
	return entity.OrderItem{
		SKU:      i.SellerSKU,
		Quantity: qty,
		Price:    price,
	}
}
