package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conversionColumns = `conversion_id, user_id, transaction_id, transaction_type,
	original_amount, original_currency, converted_amount, converted_currency,
	exchange_rate, conversion_date, created_at`

// PgxConversionRepository persists the conversion audit trail.
type PgxConversionRepository struct {
	BaseRepository
}

func newPgxConversionRepository(pool *pgxpool.Pool) portsrepo.ConversionRepositoryFacade {
	return &PgxConversionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conversion domain.TransactionConversion) error {
	m := mapping.ToModelConversion(conversion)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO transaction_conversions (`+conversionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.ConversionID, m.UserID, m.TransactionID, m.TransactionType,
		m.OriginalAmount, m.OriginalCurrency, m.ConvertedAmount, m.ConvertedCurrency,
		m.ExchangeRate, m.ConversionDate, m.CreatedAt,
	)
	if err != nil {
		return insertErr(err, "conversion", m.ConversionID)
	}
	return nil
}

func (r *PgxConversionRepository) FindConversionsByTransaction(ctx context.Context, userID, transactionID string, transactionType domain.TransactionType) ([]domain.TransactionConversion, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+conversionColumns+`
		FROM transaction_conversions
		WHERE user_id = $1 AND transaction_id = $2 AND transaction_type = $3
		ORDER BY created_at, conversion_id;`,
		userID, transactionID, string(transactionType))
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions for %s: %w", transactionID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransactionConversion])
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversions: %w", err)
	}
	return mapping.ToDomainConversionSlice(ms), nil
}

// ListConversions returns a newest-first page using a (created_at, conversion_id) keyset cursor.
func (r *PgxConversionRepository) ListConversions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionConversion, *string, error) {
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1
	args := []any{userID}
	query := `SELECT ` + conversionColumns + ` FROM transaction_conversions WHERE user_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, conversion_id) < ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}
	query += ` ORDER BY created_at DESC, conversion_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query conversions", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransactionConversion])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan conversions", err)
	}

	if len(ms) <= limit {
		return mapping.ToDomainConversionSlice(ms), nil, nil
	}
	page := ms[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.ConversionID)
	return mapping.ToDomainConversionSlice(page), &token, nil
}

// DeleteConversionsByTransaction is a no-op when nothing matches.
func (r *PgxConversionRepository) DeleteConversionsByTransaction(ctx context.Context, userID, transactionID string, transactionType domain.TransactionType) error {
	_, err := r.Pool.Exec(ctx, `
		DELETE FROM transaction_conversions
		WHERE user_id = $1 AND transaction_id = $2 AND transaction_type = $3;`,
		userID, transactionID, string(transactionType))
	if err != nil {
		return fmt.Errorf("failed to delete conversions for %s: %w", transactionID, err)
	}
	return nil
}
