package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

// DefaultRateCacheTTL is how long a fetched rate table is served without I/O.
const DefaultRateCacheTTL = time.Hour

// rateProvider owns the process-wide rate table. One instance is built at
// startup and shared by every consumer.
type rateProvider struct {
	BaseService
	source       ports.RateSource
	repo         portsrepo.ExchangeRateRepositoryFacade
	baseCurrency string
	ttl          time.Duration

	mu     sync.RWMutex
	cached *domain.RateTable
	flight singleflight.Group
}

// RateProviderOption configures the rate provider.
type RateProviderOption func(*rateProvider)

// WithCacheTTL overrides DefaultRateCacheTTL. Non-positive values are ignored.
func WithCacheTTL(ttl time.Duration) RateProviderOption {
	return func(p *rateProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithRateProviderBase applies ServiceOptions such as WithClock to the provider.
func WithRateProviderBase(opts ...ServiceOption) RateProviderOption {
	return func(p *rateProvider) {
		for _, opt := range opts {
			opt(&p.BaseService)
		}
	}
}

// NewRateProvider creates the rate provider for baseCurrency.
func NewRateProvider(source ports.RateSource, repo portsrepo.ExchangeRateRepositoryFacade, baseCurrency string, opts ...RateProviderOption) portssvc.RateProviderSvc {
	p := &rateProvider{
		BaseService:  newBaseService(),
		source:       source,
		repo:         repo,
		baseCurrency: strings.ToUpper(baseCurrency),
		ttl:          DefaultRateCacheTTL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ portssvc.RateProviderSvc = (*rateProvider)(nil)

func (p *rateProvider) GetRates(ctx context.Context, force bool) (*domain.RateTable, error) {
	if !force {
		if table := p.freshTable(); table != nil {
			return table, nil
		}
	}

	key := "cached"
	if force {
		key = "forced"
	}
	// Waiters share the leader's result, so the load must not die with the leader's request.
	v, err, shared := p.flight.Do(key, func() (any, error) {
		return p.load(context.WithoutCancel(ctx), force)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.LogDebug(ctx, "Joined in-flight rate load", slog.Bool("force", force))
	}
	return v.(*domain.RateTable), nil
}

func (p *rateProvider) load(ctx context.Context, force bool) (*domain.RateTable, error) {
	var stored *domain.RateTable

	if !force {
		if table := p.freshTable(); table != nil {
			return table, nil
		}

		found, err := p.repo.FindLatestRateTable(ctx, p.baseCurrency)
		switch {
		case err == nil:
			stored = found
			if found.IsFresh(p.now(), p.ttl) {
				p.setTable(found)
				p.LogDebug(ctx, "Adopted persisted rate table", slog.Time("fetched_at", found.FetchedAt))
				return found, nil
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			p.LogError(ctx, err, "Failed to read persisted rate table", slog.String("base_currency", p.baseCurrency))
		}
	}

	raw, err := p.source.FetchRates(ctx, p.baseCurrency)
	if err != nil {
		p.LogError(ctx, err, "Failed to fetch live exchange rates", slog.String("base_currency", p.baseCurrency))
		if stale := p.currentTable(); stale != nil {
			p.LogInfo(ctx, "Serving stale exchange rates", slog.Time("fetched_at", stale.FetchedAt))
			return stale, nil
		}
		if stored != nil {
			p.setTable(stored)
			p.LogInfo(ctx, "Serving stale persisted exchange rates", slog.Time("fetched_at", stored.FetchedAt))
			return stored, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}

	table := domain.NewRateTable(p.baseCurrency, raw, p.now())
	p.setTable(table)
	p.LogInfo(ctx, "Fetched live exchange rates", slog.Int("currencies", len(table.Rates)), slog.Bool("force", force))

	if err := p.repo.SaveRateTable(ctx, *table); err != nil {
		p.LogError(ctx, err, "Failed to persist rate table")
	}
	return table, nil
}

func (p *rateProvider) freshTable() *domain.RateTable {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cached != nil && p.cached.IsFresh(p.now(), p.ttl) {
		return p.cached
	}
	return nil
}

func (p *rateProvider) currentTable() *domain.RateTable {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cached
}

func (p *rateProvider) setTable(table *domain.RateTable) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = table
}
