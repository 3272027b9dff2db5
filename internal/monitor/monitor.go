// Package monitor runs catalog monitoring cycles.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/internal/diff"
	"github.com/MichalMitros/catalog-stock-monitor/internal/notifier"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/storage"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Catalog --filename catalog.go
//go:generate mockery --name Store --filename store.go
//go:generate mockery --name StockFilter --filename stockfilter.go
//go:generate mockery --name Notifier --filename notifier.go
//go:generate mockery --name EventPublisher --filename eventpublisher.go

// DefaultInterval is pause between scheduled cycles.
const DefaultInterval = 60 * time.Second

// Catalog fetches full product listing.
type Catalog interface {
	FetchAll(ctx context.Context) (products []models.Product, totalCount int, err error)
}

// Store loads and saves catalog snapshot.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot *models.Snapshot) error
}

// StockFilter filters products down to those in stock.
type StockFilter interface {
	InStock(ctx context.Context, products []models.Product) []models.Product
}

// Notifier delivers message chunks.
type Notifier interface {
	Dispatch(ctx context.Context, chunks []string) error
}

// EventPublisher publishes monitor events.
type EventPublisher interface {
	PublishProductsAdded(ctx context.Context, event events.ProductsAdded) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Option is custom configuration of Monitor.
type Option func(m *Monitor)

// Monitor detects new in stock products in catalog and reports them.
type Monitor struct {
	catalog   Catalog
	store     Store
	filter    StockFilter
	notifier  Notifier
	publisher EventPublisher
	clock     Clock
	label     string
	interval  time.Duration
	logger    *zerolog.Logger
	running   atomic.Bool
}

// NewMonitor returns new Monitor. Label names monitored catalog in bootstrap announcement.
func NewMonitor(
	catalog Catalog,
	store Store,
	filter StockFilter,
	notifier Notifier,
	label string,
	logger *zerolog.Logger,
	ops ...Option,
) *Monitor {
	m := &Monitor{
		catalog:  catalog,
		store:    store,
		filter:   filter,
		notifier: notifier,
		clock:    systemClock{},
		label:    label,
		interval: DefaultInterval,
		logger:   logger,
	}

	for _, op := range ops {
		op(m)
	}

	return m
}

// Run runs cycle immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.runScheduled(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.runScheduled(ctx)
		}
	}
}

func (m *Monitor) runScheduled(ctx context.Context) {
	_, err := m.RunCycle(ctx)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		m.logger.Debug().Msg("previous cycle still running, skipping")
	}
}

// RunCycle runs single monitoring cycle. It returns platform.ErrAlreadyRunning when another cycle is running.
// Notification failures are logged and don't fail the cycle.
func (m *Monitor) RunCycle(ctx context.Context) (Outcome, error) {
	if !m.running.CompareAndSwap(false, true) {
		return OutcomeSkipped, platform.ErrAlreadyRunning
	}
	defer m.running.Store(false)

	logger := m.logger.With().Str("cycleId", uuid.NewString()).Logger()
	logger.Info().Msg("checking for product changes")

	outcome, err := m.runCycle(ctx, &logger)
	if err != nil {
		logger.Error().
			Err(err).
			Str("outcome", string(outcome)).
			Msg("cycle failed")
		return outcome, err
	}

	logger.Info().
		Str("outcome", string(outcome)).
		Msg("cycle finished")

	return outcome, nil
}

func (m *Monitor) runCycle(ctx context.Context, logger *zerolog.Logger) (Outcome, error) {
	products, newCount, err := m.catalog.FetchAll(ctx)
	if err != nil {
		return OutcomeFetchFailed, fmt.Errorf("can't fetch catalog, will retry next interval: %w", err)
	}

	previous, err := m.store.Load(ctx)
	if errors.Is(err, storage.ErrCorruptSnapshot) {
		logger.Warn().
			Err(err).
			Msg("stored snapshot is corrupted, starting fresh")
		previous, err = &models.Snapshot{}, nil
	}
	if err != nil {
		return OutcomeLoadFailed, fmt.Errorf("can't load snapshot: %w", err)
	}

	logger.Info().
		Int("current", newCount).
		Int("previous", previous.Count).
		Msg("catalog fetched")

	now := m.clock.Now()

	if previous.IsEmpty() {
		return m.bootstrap(ctx, logger, products, newCount, now)
	}

	if newCount == previous.Count && len(products) == len(previous.Products) {
		refreshed := *previous
		refreshed.LastChecked = now
		return OutcomeNoChange, m.store.Save(ctx, &refreshed)
	}

	changes := diff.Diff(previous.Products, products)
	logger.Info().
		Int("added", len(changes.Added)).
		Int("removed", len(changes.Removed)).
		Msg("catalog changed")

	next := &models.Snapshot{
		Products:    products,
		Count:       newCount,
		LastChecked: now,
		LastChange:  previous.LastChange,
	}

	if len(changes.Added) == 0 {
		return OutcomeNoneAdded, m.store.Save(ctx, next)
	}

	inStock := m.filter.InStock(ctx, changes.Added)
	if err := ctx.Err(); err != nil {
		// unchecked added products must not be stored as seen
		return OutcomeInterrupted, fmt.Errorf("stock filtering interrupted, snapshot left untouched: %w", err)
	}
	if len(inStock) == 0 {
		logger.Info().Msg("all new products are out of stock")
		return OutcomeNoneInStock, m.store.Save(ctx, next)
	}

	logger.Info().
		Int("inStock", len(inStock)).
		Int("added", len(changes.Added)).
		Msg("new products in stock")

	m.report(ctx, logger, previous.Count, newCount, inStock, len(changes.Added), now)

	next.LastChange = &models.Change{Added: inStock, Timestamp: now}

	return OutcomeReported, m.store.Save(ctx, next)
}

func (m *Monitor) bootstrap(
	ctx context.Context,
	logger *zerolog.Logger,
	products []models.Product,
	count int,
	now time.Time,
) (Outcome, error) {
	err := m.store.Save(ctx, &models.Snapshot{
		Products:    products,
		Count:       count,
		LastChecked: now,
	})
	if err != nil {
		return OutcomeBootstrap, err
	}

	logger.Info().
		Int("tracking", count).
		Msg("initial scan complete")

	if err := m.notifier.Dispatch(ctx, []string{notifier.Announcement(count, m.label)}); err != nil {
		logger.Error().
			Err(err).
			Msg("can't send announcement")
	}

	return OutcomeBootstrap, nil
}

func (m *Monitor) report(
	ctx context.Context,
	logger *zerolog.Logger,
	oldCount, newCount int,
	inStock []models.Product,
	totalAdded int,
	now time.Time,
) {
	chunks := notifier.FormatReport(oldCount, newCount, inStock, totalAdded)
	if err := m.notifier.Dispatch(ctx, chunks); err != nil {
		logger.Error().
			Err(err).
			Int("chunks", len(chunks)).
			Msg("can't send report")
	}

	if m.publisher == nil {
		return
	}

	event := events.ProductsAdded{
		ID:         uuid.NewString(),
		OccurredAt: now,
		OldCount:   oldCount,
		NewCount:   newCount,
		TotalAdded: totalAdded,
		Products:   lo.Map(inStock, func(p models.Product, _ int) events.Product { return toEventProduct(p) }),
	}
	if err := m.publisher.PublishProductsAdded(ctx, event); err != nil {
		logger.Error().
			Err(err).
			Msg("can't publish products added event")
	}
}

func toEventProduct(p models.Product) events.Product {
	return events.Product{
		Code:       p.Code,
		Name:       p.Name,
		Brand:      p.Brand,
		Price:      p.DisplayPrice(),
		Discount:   p.Discount,
		URL:        p.URL,
		Stock:      lo.FromPtr(p.Stock),
		StockSizes: p.StockSizes,
	}
}

// WithClock sets Monitor's custom Clock.
func WithClock(c Clock) Option {
	return func(m *Monitor) {
		m.clock = c
	}
}

// WithInterval sets pause between scheduled cycles.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithEventPublisher sets publisher of products added events.
func WithEventPublisher(p EventPublisher) Option {
	return func(m *Monitor) {
		m.publisher = p
	}
}
