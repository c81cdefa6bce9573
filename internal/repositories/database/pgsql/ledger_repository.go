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
)

const (
	incomeColumns = `income_id, user_id, source, amount, currency_code, account_id, category,
		is_loan_income, loan_id, settlement_status, income_date,
		created_at, created_by, last_updated_at, last_updated_by`
	expenseColumns = `expense_id, user_id, description, amount, currency_code, account_id, category,
		payment_status, transfer_id, expense_date,
		created_at, created_by, last_updated_at, last_updated_by`
	investmentColumns = `investment_id, user_id, name, investment_type, amount, currency_code, account_id,
		investment_date, created_at, created_by, last_updated_at, last_updated_by`
)

// PgxLedgerRepository stores incomes, expenses and investments.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.IncomeRepositoryFacade     = (*PgxLedgerRepository)(nil)
	_ portsrepo.ExpenseRepositoryFacade    = (*PgxLedgerRepository)(nil)
	_ portsrepo.InvestmentRepositoryFacade = (*PgxLedgerRepository)(nil)
)

func (r *PgxLedgerRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO incomes (`+incomeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		m.IncomeID, m.UserID, m.Source, m.Amount, m.CurrencyCode, m.AccountID, m.Category,
		m.IsLoanIncome, m.LoanID, m.SettlementStatus, m.IncomeDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "income", m.IncomeID)
	}
	return nil
}

func (r *PgxLedgerRepository) FindIncomeByID(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	m, err := collectOne[models.Income](ctx, r.Pool,
		`SELECT `+incomeColumns+` FROM incomes WHERE income_id = $1 AND user_id = $2;`, incomeID, userID)
	if err != nil {
		return nil, findErr(err, "income", incomeID)
	}
	d := mapping.ToDomainIncome(m)
	return &d, nil
}

func (r *PgxLedgerRepository) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1 AND user_id = $2;`, incomeID, userID)
	return affectedOne(tag, err, "income", incomeID)
}

func (r *PgxLedgerRepository) UpdateSettlementStatus(ctx context.Context, userID, incomeID string, status domain.SettlementStatus, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE incomes SET settlement_status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE income_id = $4 AND user_id = $3;`,
		string(status), now, userID, incomeID)
	return affectedOne(tag, err, "income", incomeID)
}

func (r *PgxLedgerRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		m.ExpenseID, m.UserID, m.Description, m.Amount, m.CurrencyCode, m.AccountID, m.Category,
		m.PaymentStatus, m.TransferID, m.ExpenseDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "expense", m.ExpenseID)
	}
	return nil
}

func (r *PgxLedgerRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	m, err := collectOne[models.Expense](ctx, r.Pool,
		`SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1 AND user_id = $2;`, expenseID, userID)
	if err != nil {
		return nil, findErr(err, "expense", expenseID)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

func (r *PgxLedgerRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2;`, expenseID, userID)
	return affectedOne(tag, err, "expense", expenseID)
}

// MarkUnpaidExpensesPaid locks the unpaid expenses on an account, settles them
// against the transfer and returns their IDs.
func (r *PgxLedgerRepository) MarkUnpaidExpensesPaid(ctx context.Context, userID, accountID, transferID string, now time.Time) ([]string, error) {
	var ids []string
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT expense_id FROM expenses
			WHERE user_id = $1 AND account_id = $2 AND payment_status = $3
			FOR UPDATE;`, userID, accountID, string(domain.Unpaid))
		if err != nil {
			return fmt.Errorf("failed to lock unpaid expenses: %w", err)
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("failed to scan unpaid expenses: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, `
			UPDATE expenses SET payment_status = $1, transfer_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE user_id = $4 AND expense_id = ANY($5);`,
			string(domain.Paid), transferID, now, userID, ids)
		if err != nil {
			return fmt.Errorf("failed to settle expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *PgxLedgerRepository) RevertExpensesToUnpaid(ctx context.Context, userID string, expenseIDs []string, now time.Time) error {
	if len(expenseIDs) == 0 {
		return nil
	}
	_, err := r.Pool.Exec(ctx, `
		UPDATE expenses SET payment_status = $1, transfer_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $3 AND expense_id = ANY($4);`,
		string(domain.Unpaid), now, userID, expenseIDs)
	if err != nil {
		return fmt.Errorf("failed to revert expenses: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) SaveInvestment(ctx context.Context, investment domain.Investment) error {
	m := mapping.ToModelInvestment(investment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO investments (`+investmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.InvestmentID, m.UserID, m.Name, m.InvestmentType, m.Amount, m.CurrencyCode, m.AccountID,
		m.InvestmentDate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "investment", m.InvestmentID)
	}
	return nil
}

func (r *PgxLedgerRepository) FindInvestmentByID(ctx context.Context, userID, investmentID string) (*domain.Investment, error) {
	m, err := collectOne[models.Investment](ctx, r.Pool,
		`SELECT `+investmentColumns+` FROM investments WHERE investment_id = $1 AND user_id = $2;`, investmentID, userID)
	if err != nil {
		return nil, findErr(err, "investment", investmentID)
	}
	d := mapping.ToDomainInvestment(m)
	return &d, nil
}

func (r *PgxLedgerRepository) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM investments WHERE investment_id = $1 AND user_id = $2;`, investmentID, userID)
	return affectedOne(tag, err, "investment", investmentID)
}
