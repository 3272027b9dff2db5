package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/samber/lo"
)

type pageResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination is listing pagination metadata.
type Pagination struct {
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// Product is model for product records in catalog listing.
type Product struct {
	Code                Code          `json:"code"`
	Name                *string       `json:"name"`
	Price               *Price        `json:"price"`
	OfferPrice          *Price        `json:"offerPrice"`
	BrickNameText       *string       `json:"brickNameText"`
	SegmentNameText     *string       `json:"segmentNameText"`
	VerticalNameText    *string       `json:"verticalNameText"`
	CouponStatus        *string       `json:"couponStatus"`
	URL                 *string       `json:"url"`
	Images              []Image       `json:"images"`
	FnlColorVariantData *ColorVariant `json:"fnlColorVariantData"`
}

// Price is model for listing prices.
type Price struct {
	Value                 *float64 `json:"value"`
	FormattedValue        *string  `json:"formattedValue"`
	DisplayFormattedValue *string  `json:"displayformattedValue"`
}

// Image is model for product images.
type Image struct {
	URL *string `json:"url"`
}

// ColorVariant is model for product color variant data.
type ColorVariant struct {
	BrandName        *string `json:"brandName"`
	OutfitPictureURL *string `json:"outfitPictureURL"`
}

// Code is provider product code, sent either as JSON string or number.
type Code string

// UnmarshalJSON accepts string and number codes.
func (c *Code) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*c = Code(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("can't decode product code %s: %w", data, err)
	}
	*c = Code(num.String())

	return nil
}

type stockResponse struct {
	BaseOptions    []baseOption `json:"baseOptions"`
	VariantOptions []variant    `json:"variantOptions"`
}

func (r *stockResponse) firstOption() *option {
	if len(r.BaseOptions) == 0 || len(r.BaseOptions[0].Options) == 0 {
		return nil
	}
	return &r.BaseOptions[0].Options[0]
}

type baseOption struct {
	Options []option `json:"options"`
}

type option struct {
	VariantOptions []variant `json:"variantOptions"`
	Stock          *stock    `json:"stock"`
}

type variant struct {
	Code  Code   `json:"code"`
	Size  string `json:"size"`
	Stock *stock `json:"stock"`
}

func (v variant) label() string {
	if v.Size != "" {
		return v.Size
	}
	return string(v.Code)
}

type stock struct {
	StockLevel float64 `json:"stockLevel"`
}

func (s *stock) level() int {
	if s == nil {
		return 0
	}
	return int(s.StockLevel)
}

// toAppProduct maps listing record into models.Product. Every field falls back to
// the first non-empty source in the listed order:
//
//	name:       name, "Unknown"
//	brand:      fnlColorVariantData.brandName, default brand
//	price:      price.displayformattedValue, price.formattedValue, "N/A"
//	offerPrice: offerPrice.displayformattedValue, none
//	discount:   derived from price.value and offerPrice.value, none
//	category:   brickNameText, "N/A"
//	segment:    segmentNameText, "N/A"
//	vertical:   verticalNameText, "N/A"
//	coupon:     couponStatus, none
//	url:        url prefixed with base URL, none
//	image:      images[0].url, fnlColorVariantData.outfitPictureURL, none
func (d Decoder) toAppProduct(product *Product) *models.Product {
	variant := lo.FromPtr(product.FnlColorVariantData)
	price := lo.FromPtr(product.Price)
	offerPrice := lo.FromPtr(product.OfferPrice)

	var image *string
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}

	return &models.Product{
		Code:       string(product.Code),
		Name:       orDefault(UnknownName, product.Name),
		Brand:      orDefault(d.defaultBrand, variant.BrandName),
		Price:      orDefault(NotAvailable, price.DisplayFormattedValue, price.FormattedValue),
		OfferPrice: firstNonEmpty(offerPrice.DisplayFormattedValue),
		Discount:   discount(price.Value, offerPrice.Value),
		Category:   orDefault(NotAvailable, product.BrickNameText),
		Segment:    orDefault(NotAvailable, product.SegmentNameText),
		Vertical:   orDefault(NotAvailable, product.VerticalNameText),
		Coupon:     firstNonEmpty(product.CouponStatus),
		URL:        d.absoluteURL(product.URL),
		ImageURL:   firstNonEmpty(image, variant.OutfitPictureURL),
	}
}

func (d Decoder) absoluteURL(path *string) *string {
	p := firstNonEmpty(path)
	if p == nil {
		return nil
	}

	if strings.HasPrefix(*p, "http://") || strings.HasPrefix(*p, "https://") {
		return p
	}

	if !strings.HasPrefix(*p, "/") {
		return lo.ToPtr(d.baseURL + "/" + *p)
	}

	return lo.ToPtr(d.baseURL + *p)
}

// discount returns rounded percentage of price reduction, or nil when any of prices is missing or zero.
func discount(price, offerPrice *float64) *string {
	if price == nil || offerPrice == nil || *price == 0 || *offerPrice == 0 {
		return nil
	}

	percent := math.Floor((1 - *offerPrice / *price)*100 + 0.5)

	return lo.ToPtr(fmt.Sprintf("%d%%", int(percent)))
}

func firstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func orDefault(fallback string, values ...*string) string {
	if v := firstNonEmpty(values...); v != nil {
		return *v
	}
	return fallback
}
