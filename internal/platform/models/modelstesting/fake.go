package modelstesting

import (
	"math/rand"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeProduct returns models.Product with fake data and unique code.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		Code:       faker.UUIDDigit(),
		Name:       faker.Word(),
		Brand:      faker.Word(),
		Price:      faker.Word(),
		OfferPrice: lo.ToPtr(faker.Word()),
		Discount:   lo.ToPtr("10%"),
		Category:   faker.Word(),
		Segment:    faker.Word(),
		Vertical:   faker.Word(),
		Coupon:     lo.ToPtr(faker.Word()),
		URL:        lo.ToPtr(faker.URL()),
		ImageURL:   lo.ToPtr(faker.URL()),
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeProducts returns n fake products.
func FakeProducts(n int, ops ...func(p *models.Product)) []models.Product {
	products := make([]models.Product, 0, n)
	for range n {
		products = append(products, FakeProduct(ops...))
	}

	return products
}

// FakeSnapshot returns models.Snapshot with random number of fake products.
func FakeSnapshot(ops ...func(s *models.Snapshot)) models.Snapshot {
	products := FakeProducts(rand.Intn(5) + 1)
	snapshot := models.Snapshot{
		Products:    products,
		Count:       len(products),
		LastChecked: time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
	}

	for _, op := range ops {
		op(&snapshot)
	}

	return snapshot
}
