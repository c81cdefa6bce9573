package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rateTableRetention is how many snapshots are kept per base currency.
const rateTableRetention = 24

// PgxExchangeRateRepository stores fetched rate tables as jsonb snapshots.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *PgxExchangeRateRepository) FindLatestRateTable(ctx context.Context, baseCurrency string) (*domain.RateTable, error) {
	base := strings.ToUpper(baseCurrency)
	m, err := collectOne[models.ExchangeRateTable](ctx, r.Pool, `
		SELECT id, base_currency, rates, fetched_at
		FROM exchange_rates
		WHERE base_currency = $1
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1;`, base)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate table stored for " + base)
		}
		return nil, fmt.Errorf("failed to load rate table for %s: %w", base, err)
	}
	return mapping.ToDomainRateTable(m)
}

// SaveRateTable inserts a snapshot and prunes older ones in the same transaction.
func (r *PgxExchangeRateRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	m, err := mapping.ToModelRateTable(table)
	if err != nil {
		return err
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO exchange_rates (base_currency, rates, fetched_at) VALUES ($1, $2, $3);`,
			m.BaseCurrency, m.Rates, m.FetchedAt); err != nil {
			return fmt.Errorf("failed to save rate table for %s: %w", m.BaseCurrency, err)
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM exchange_rates
			WHERE base_currency = $1 AND id NOT IN (
				SELECT id FROM exchange_rates WHERE base_currency = $1
				ORDER BY fetched_at DESC, id DESC LIMIT $2
			);`, m.BaseCurrency, rateTableRetention); err != nil {
			return fmt.Errorf("failed to prune rate tables for %s: %w", m.BaseCurrency, err)
		}
		return nil
	})
}
