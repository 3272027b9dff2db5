package decoder_test

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/MichalMitros/catalog-stock-monitor/internal/decoder"
	"github.com/MichalMitros/catalog-stock-monitor/internal/decoder/testdata"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageFileName = "page.json"

func TestUnitDecodePage(t *testing.T) {
	file := pageFileAsReader(t)

	dec := decoder.NewDecoder(testdata.BaseURL+"/", testdata.DefaultBrand)
	page, err := dec.DecodePage(file)

	require.NoError(t, err, "should not return any error")
	assert.Equal(t, testdata.Products, page.Products, "should correctly decode all products")
	assert.Equal(t, 3, page.TotalPages, "should decode total pages")
	assert.Equal(t, 95, page.TotalResults, "should decode total results")
}

func TestUnitDecodePageBadJSON(t *testing.T) {
	dec := decoder.NewDecoder(testdata.BaseURL, testdata.DefaultBrand)

	_, err := dec.DecodePage(strings.NewReader(`{"products": [`))

	require.ErrorContains(t, err, "can't decode catalog page", "should return decoding error")
}

func TestUnitDecodePageDiscount(t *testing.T) {
	tests := map[string]struct {
		price        string
		wantDiscount *string
	}{
		"both values": {
			price:        `"price": {"value": 1000}, "offerPrice": {"value": 750}`,
			wantDiscount: ptr("25%"),
		},
		"half rounds up": {
			price:        `"price": {"value": 200}, "offerPrice": {"value": 199}`,
			wantDiscount: ptr("1%"),
		},
		"missing offer value": {
			price: `"price": {"value": 1000}, "offerPrice": {"displayformattedValue": "₹750"}`,
		},
		"missing price": {
			price: `"offerPrice": {"value": 750}`,
		},
		"zero price": {
			price: `"price": {"value": 0}, "offerPrice": {"value": 750}`,
		},
	}

	dec := decoder.NewDecoder(testdata.BaseURL, testdata.DefaultBrand)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			body := `{"products": [{"code": "a", ` + tt.price + `}]}`

			page, err := dec.DecodePage(strings.NewReader(body))

			require.NoError(t, err, "should not return any error")
			require.Len(t, page.Products, 1, "should decode single product")
			assert.Equal(t, tt.wantDiscount, page.Products[0].Discount, "should derive correct discount")
		})
	}
}

func TestUnitDecodeStock(t *testing.T) {
	tests := map[string]struct {
		body string
		want *models.StockResult
	}{
		"size variants": {
			body: `{"baseOptions": [{"options": [{"variantOptions": [
				{"size": "S", "stock": {"stockLevel": 0}},
				{"size": "M", "stock": {"stockLevel": 3}}
			]}]}]}`,
			want: &models.StockResult{InStock: true, TotalStock: 3, Sizes: []string{"M: 3"}},
		},
		"variant without size uses code": {
			body: `{"baseOptions": [{"options": [{"variantOptions": [
				{"code": "v-1", "stock": {"stockLevel": 2}},
				{"size": "L", "stock": {"stockLevel": 5}}
			]}]}]}`,
			want: &models.StockResult{InStock: true, TotalStock: 7, Sizes: []string{"v-1: 2", "L: 5"}},
		},
		"top level variants fallback": {
			body: `{"variantOptions": [{"size": "XL", "stock": {"stockLevel": 4}}]}`,
			want: &models.StockResult{InStock: true, TotalStock: 4, Sizes: []string{"XL: 4"}},
		},
		"base stock fallback": {
			body: `{"baseOptions": [{"options": [{"stock": {"stockLevel": 9}}]}]}`,
			want: &models.StockResult{InStock: true, TotalStock: 9, Sizes: []string{}},
		},
		"all variants sold out": {
			body: `{"baseOptions": [{"options": [{"variantOptions": [
				{"size": "S", "stock": {"stockLevel": 0}},
				{"size": "M"}
			], "stock": {"stockLevel": 10}}]}]}`,
			want: &models.StockResult{InStock: false, TotalStock: 0, Sizes: []string{}},
		},
		"no stock data": {
			body: `{}`,
			want: &models.StockResult{InStock: false, TotalStock: 0, Sizes: []string{}},
		},
	}

	dec := decoder.NewDecoder(testdata.BaseURL, testdata.DefaultBrand)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := dec.DecodeStock(strings.NewReader(tt.body))

			require.NoError(t, err, "should not return any error")
			assert.Equal(t, tt.want, result, "should aggregate stock correctly")
		})
	}
}

func TestUnitDecodeStockBadJSON(t *testing.T) {
	dec := decoder.NewDecoder(testdata.BaseURL, testdata.DefaultBrand)

	_, err := dec.DecodeStock(strings.NewReader(`{"baseOptions": "x"}`))

	require.ErrorContains(t, err, "can't decode product detail", "should return decoding error")
}

// pageFileAsReader returns file with catalog page.
func pageFileAsReader(t *testing.T) *os.File {
	t.Helper()

	f, err := os.Open(path.Join("testdata", pageFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}

func ptr(s string) *string {
	return &s
}
