// Package diff compares product lists by product code.
package diff

import (
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/samber/lo"
)

// Changes is result of comparing two product lists.
type Changes struct {
	Added   []models.Product
	Removed []models.Product
}

// Diff returns products of current missing in previous as added and products of previous
// missing in current as removed. Relative input order is preserved.
func Diff(previous, current []models.Product) Changes {
	previousCodes := codeSet(previous)
	currentCodes := codeSet(current)

	return Changes{
		Added: lo.Filter(current, func(p models.Product, _ int) bool {
			_, ok := previousCodes[p.Code]
			return !ok
		}),
		Removed: lo.Filter(previous, func(p models.Product, _ int) bool {
			_, ok := currentCodes[p.Code]
			return !ok
		}),
	}
}

func codeSet(products []models.Product) map[string]struct{} {
	return lo.SliceToMap(products, func(p models.Product) (string, struct{}) {
		return p.Code, struct{}{}
	})
}
