// Package stock filters candidate products down to those currently in stock.
package stock

import (
	"context"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Lookup --filename lookup.go

const (
	// DefaultBatchSize is maximum number of concurrent stock lookups.
	DefaultBatchSize = 10
	// DefaultBatchDelay is pause between batches.
	DefaultBatchDelay = 500 * time.Millisecond
)

// Lookup resolves current product stock. Nil result means stock couldn't be determined.
type Lookup interface {
	FetchStock(ctx context.Context, productCode string) *models.StockResult
}

// Option is custom configuration of Filter.
type Option func(f *Filter)

// Filter resolves stock of products in batches of bounded size.
type Filter struct {
	lookup     Lookup
	batchSize  int
	batchDelay time.Duration
	logger     *zerolog.Logger
}

// NewFilter returns new Filter.
func NewFilter(lookup Lookup, logger *zerolog.Logger, ops ...Option) *Filter {
	f := &Filter{
		lookup:     lookup,
		batchSize:  DefaultBatchSize,
		batchDelay: DefaultBatchDelay,
		logger:     logger,
	}

	for _, op := range ops {
		op(f)
	}

	return f
}

// InStock returns products which are in stock, annotated with their stock details.
// Products with unknown stock are dropped. Order of products is preserved.
// When ctx is done, products filtered so far are returned.
func (f *Filter) InStock(ctx context.Context, products []models.Product) []models.Product {
	inStock := make([]models.Product, 0, len(products))
	batches := lo.Chunk(products, f.batchSize)

	for ix, batch := range batches {
		if ix > 0 {
			if err := platform.Sleep(ctx, f.batchDelay); err != nil {
				f.logger.Warn().
					Err(err).
					Int("checked", ix*f.batchSize).
					Int("total", len(products)).
					Msg("stock filtering interrupted")
				break
			}
		}

		f.logger.Debug().
			Int("from", ix*f.batchSize+1).
			Int("to", ix*f.batchSize+len(batch)).
			Int("total", len(products)).
			Msg("checking stock")

		batchInStock, err := f.checkBatch(ctx, batch)
		inStock = append(inStock, batchInStock...)
		if err != nil {
			f.logger.Warn().
				Err(err).
				Int("checked", ix*f.batchSize+len(batch)).
				Int("total", len(products)).
				Msg("stock filtering interrupted")
			break
		}
	}

	return inStock
}

// checkBatch looks up stock of all batch products concurrently and waits for all of them.
// Lookup failures degrade to unknown stock, only ctx cancellation is returned as error,
// together with products found in stock before it.
func (f *Filter) checkBatch(ctx context.Context, batch []models.Product) ([]models.Product, error) {
	results := make([]*models.StockResult, len(batch))

	var eg errgroup.Group
	for ix := range batch {
		eg.Go(func() error {
			results[ix] = f.lookup.FetchStock(ctx, batch[ix].Code)
			return ctx.Err()
		})
	}
	err := eg.Wait()

	inStock := make([]models.Product, 0, len(batch))
	for ix, result := range results {
		if result == nil || !result.InStock {
			continue
		}
		product := batch[ix]
		product.Stock = lo.ToPtr(result.TotalStock)
		product.StockSizes = result.Sizes
		inStock = append(inStock, product)
	}

	return inStock, err
}

// WithBatchSize sets maximum number of concurrent stock lookups.
func WithBatchSize(size int) Option {
	return func(f *Filter) {
		if size > 0 {
			f.batchSize = size
		}
	}
}

// WithBatchDelay sets pause between batches.
func WithBatchDelay(d time.Duration) Option {
	return func(f *Filter) {
		f.batchDelay = d
	}
}
