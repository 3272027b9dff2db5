package models

import "time"

// Product is catalog product model.
type Product struct {
	Code       string   `json:"id"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand"`
	Price      string   `json:"price"`
	OfferPrice *string  `json:"offerPrice"`
	Discount   *string  `json:"discount"`
	Category   string   `json:"category"`
	Segment    string   `json:"segment"`
	Vertical   string   `json:"vertical"`
	Coupon     *string  `json:"coupon"`
	URL        *string  `json:"url"`
	ImageURL   *string  `json:"image"`
	Stock      *int     `json:"stock,omitempty"`
	StockSizes []string `json:"stockSizes,omitempty"`
}

// DisplayPrice returns offer price if product has one, list price otherwise.
func (p Product) DisplayPrice() string {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	return p.Price
}

// Page is single page of catalog listing.
type Page struct {
	Products     []Product
	TotalPages   int
	TotalResults int
}

// StockResult is result of single product stock lookup.
type StockResult struct {
	InStock    bool
	TotalStock int
	Sizes      []string
}

// Change is audit record of products added in the last reported cycle.
type Change struct {
	Added     []Product `json:"added"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the last known catalog state.
type Snapshot struct {
	Products    []Product `json:"products"`
	Count       int       `json:"count"`
	LastChecked time.Time `json:"lastChecked"`
	LastChange  *Change   `json:"lastChange,omitempty"`
}

// IsEmpty reports whether snapshot can't be used as diffing baseline.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || s.Count == 0
}
