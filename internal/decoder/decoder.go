package decoder

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
)

const (
	// UnknownName is used for products without name.
	UnknownName = "Unknown"
	// NotAvailable is used for missing price and taxonomy labels.
	NotAvailable = "N/A"
)

// Decoder decodes catalog JSON documents into products and stock results.
type Decoder struct {
	baseURL      string
	defaultBrand string
}

// NewDecoder returns new Decoder. Relative product URLs are prefixed with baseURL,
// products without brand get defaultBrand.
func NewDecoder(baseURL, defaultBrand string) *Decoder {
	return &Decoder{
		baseURL:      strings.TrimRight(baseURL, "/"),
		defaultBrand: defaultBrand,
	}
}

// DecodePage decodes single catalog listing page.
func (d Decoder) DecodePage(body io.Reader) (*models.Page, error) {
	var resp pageResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("can't decode catalog page: %w", err)
	}

	products := make([]models.Product, 0, len(resp.Products))
	for ix := range resp.Products {
		products = append(products, *d.toAppProduct(&resp.Products[ix]))
	}

	return &models.Page{
		Products:     products,
		TotalPages:   resp.Pagination.TotalPages,
		TotalResults: resp.Pagination.TotalResults,
	}, nil
}

// DecodeStock decodes product detail document into stock result.
func (d Decoder) DecodeStock(body io.Reader) (*models.StockResult, error) {
	var resp stockResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("can't decode product detail: %w", err)
	}

	return toStockResult(&resp), nil
}

// toStockResult sums positive stock levels of size variants, falling back to base option stock
// when product has no variants.
func toStockResult(resp *stockResponse) *models.StockResult {
	variants := resp.VariantOptions
	var baseStock *stock

	if opt := resp.firstOption(); opt != nil {
		if opt.VariantOptions != nil {
			variants = opt.VariantOptions
		}
		baseStock = opt.Stock
	}

	result := &models.StockResult{Sizes: []string{}}

	if len(variants) > 0 {
		for _, variant := range variants {
			level := variant.Stock.level()
			if level <= 0 {
				continue
			}
			result.TotalStock += level
			result.Sizes = append(result.Sizes, fmt.Sprintf("%s: %d", variant.label(), level))
		}
	} else if baseStock != nil {
		result.TotalStock = max(baseStock.level(), 0)
	}

	result.InStock = result.TotalStock > 0

	return result
}
