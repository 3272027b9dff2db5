package catalog

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/rs/zerolog"
)

const (
	// DefaultPageDelay is pause between listing page requests.
	DefaultPageDelay = 500 * time.Millisecond
	// DefaultStockTimeout is deadline of single stock lookup.
	DefaultStockTimeout = 10 * time.Second
)

// Fetcher fetches JSON documents.
type Fetcher interface {
	FetchJSON(context.Context, string) (io.ReadCloser, error)
}

// Decoder decodes catalog documents.
type Decoder interface {
	DecodePage(io.Reader) (*models.Page, error)
	DecodeStock(io.Reader) (*models.StockResult, error)
}

// Option is custom configuration of Client.
type Option func(c *Client)

// Client reads product listings and stock details from catalog API.
type Client struct {
	fetcher      Fetcher
	decoder      Decoder
	baseURL      string
	category     string
	pageDelay    time.Duration
	stockTimeout time.Duration
	logger       *zerolog.Logger
}

// NewClient returns new Client for category listing served from baseURL.
func NewClient(fetcher Fetcher, decoder Decoder, baseURL, category string, logger *zerolog.Logger, ops ...Option) *Client {
	c := &Client{
		fetcher:      fetcher,
		decoder:      decoder,
		baseURL:      strings.TrimRight(baseURL, "/"),
		category:     category,
		pageDelay:    DefaultPageDelay,
		stockTimeout: DefaultStockTimeout,
		logger:       logger,
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// FetchPage fetches and decodes single listing page. Pages are indexed from 0.
func (c *Client) FetchPage(ctx context.Context, pageIndex int) (*models.Page, error) {
	pageURL := fmt.Sprintf("%s/api/category/%s?currentPage=%d", c.baseURL, url.PathEscape(c.category), pageIndex)

	body, err := c.fetcher.FetchJSON(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{Page: pageIndex, Err: err}
	}
	defer body.Close()

	page, err := c.decoder.DecodePage(body)
	if err != nil {
		return nil, &FetchError{Page: pageIndex, Err: err}
	}

	return page, nil
}

// FetchAll walks all listing pages sequentially and returns all products with total results count.
// Failure of any page aborts whole listing.
func (c *Client) FetchAll(ctx context.Context) ([]models.Product, int, error) {
	first, err := c.FetchPage(ctx, 0)
	if err != nil {
		return nil, 0, err
	}

	totalPages := max(first.TotalPages, 1)
	products := first.Products

	for pageIndex := 1; pageIndex < totalPages; pageIndex++ {
		if err := platform.Sleep(ctx, c.pageDelay); err != nil {
			return nil, 0, &FetchError{Page: pageIndex, Err: err}
		}

		c.logger.Debug().
			Int("page", pageIndex+1).
			Int("totalPages", totalPages).
			Msg("fetching catalog page")

		page, err := c.FetchPage(ctx, pageIndex)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, page.Products...)
	}

	totalCount := first.TotalResults
	if totalCount <= 0 {
		totalCount = len(products)
	}

	return products, totalCount, nil
}

// FetchStock returns current stock of product. It returns nil when stock can't be determined.
func (c *Client) FetchStock(ctx context.Context, productCode string) *models.StockResult {
	ctx, cancel := context.WithTimeout(ctx, c.stockTimeout)
	defer cancel()

	stockURL := fmt.Sprintf("%s/api/p/%s", c.baseURL, url.PathEscape(productCode))

	body, err := c.fetcher.FetchJSON(ctx, stockURL)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("code", productCode).
			Msg("can't fetch product stock")
		return nil
	}
	defer body.Close()

	result, err := c.decoder.DecodeStock(body)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("code", productCode).
			Msg("can't decode product stock")
		return nil
	}

	return result
}

// WithPageDelay sets pause between listing page requests.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// WithStockTimeout sets deadline of single stock lookup.
func WithStockTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.stockTimeout = d
	}
}
