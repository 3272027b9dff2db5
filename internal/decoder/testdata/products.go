package testdata

import (
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/samber/lo"
)

// BaseURL is base URL used to decode page.json.
const BaseURL = "https://shop.example"

// DefaultBrand is default brand used to decode page.json.
const DefaultBrand = "Shein"

// Products contains products decoded from page.json.
var Products = []models.Product{
	{
		Code:       "443322_black",
		Name:       "Ribbed Knit Top",
		Brand:      "SHEIN",
		Price:      "₹1000",
		OfferPrice: lo.ToPtr("₹750"),
		Discount:   lo.ToPtr("25%"),
		Category:   "Tops",
		Segment:    "Women",
		Vertical:   "Apparel",
		Coupon:     lo.ToPtr("Extra 10% off"),
		URL:        lo.ToPtr("https://shop.example/ribbed-knit-top/p/443322_black"),
		ImageURL:   lo.ToPtr("https://img.example/443322.jpg"),
	},
	{
		Code:     "778899",
		Name:     "Unknown",
		Brand:    "Shein",
		Price:    "Rs.500.00",
		Category: "N/A",
		Segment:  "N/A",
		Vertical: "N/A",
		URL:      lo.ToPtr("https://other.example/p/778899"),
		ImageURL: lo.ToPtr("https://img.example/outfit-778899.jpg"),
	},
	{
		Code:     "empty_1",
		Name:     "Unknown",
		Brand:    "Shein",
		Price:    "N/A",
		Category: "N/A",
		Segment:  "N/A",
		Vertical: "N/A",
	},
}
