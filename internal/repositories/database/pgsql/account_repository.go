package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, name, bank_name, account_type, currency_code, balance,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements the account port on PostgreSQL.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO bank_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.AccountID, m.UserID, m.Name, m.BankName, m.AccountType, m.CurrencyCode, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "account", m.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.BankAccount, error) {
	m, err := collectOne[models.BankAccount](ctx, r.Pool,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE account_id = $1 AND user_id = $2;`,
		accountID, userID)
	if err != nil {
		return nil, findErr(err, "account", accountID)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE user_id = $1 ORDER BY name, account_id;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankAccount])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// AdjustBalance applies delta in a single statement so concurrent adjustments never lose updates.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, userID, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		UPDATE bank_accounts
		SET balance = ROUND(balance + $1, 2), last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4 AND user_id = $3
		RETURNING balance;`,
		delta, now, userID, accountID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, findErr(err, "account", accountID)
	}
	return balance, nil
}
