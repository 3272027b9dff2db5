// Package events contains events published by the catalog monitor.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockery --name Sender --filename sender.go

// Product is product reported in ProductsAdded event.
type Product struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand"`
	Price      string   `json:"price"`
	Discount   *string  `json:"discount,omitempty"`
	URL        *string  `json:"url,omitempty"`
	Stock      int      `json:"stock"`
	StockSizes []string `json:"stockSizes,omitempty"`
}

// ProductsAdded is published when cycle found new products in stock.
type ProductsAdded struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	OldCount   int       `json:"oldCount"`
	NewCount   int       `json:"newCount"`
	TotalAdded int       `json:"totalAdded"`
	Products   []Product `json:"products"`
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// Publisher publishes monitor events.
type Publisher struct {
	sender Sender
}

// NewPublisher returns new Publisher using provided sender for sending messages.
func NewPublisher(sender Sender) Publisher {
	return Publisher{
		sender: sender,
	}
}

// PublishProductsAdded publishes ProductsAdded event.
func (p Publisher) PublishProductsAdded(ctx context.Context, event ProductsAdded) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("can't marshal products added event: %w", err)
	}

	return p.sender.Send(ctx, msg)
}
