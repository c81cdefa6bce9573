package pgsql

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `loan_id, user_id, lender, principal_amount, remaining_balance, currency_code,
	status, linked_account_id, loan_income_id, start_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.LoanRepositoryFacade          = (*PgxLoanRepository)(nil)
	_ portsrepo.LoanRepaymentRepositoryFacade = (*PgxLoanRepository)(nil)
)

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO loans (`+loanColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		m.LoanID, m.UserID, m.Lender, m.PrincipalAmount, m.RemainingBalance, m.CurrencyCode,
		m.Status, m.LinkedAccountID, m.LoanIncomeID, m.StartDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "loan", m.LoanID)
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	m, err := collectOne[models.Loan](ctx, r.Pool,
		`SELECT `+loanColumns+` FROM loans WHERE loan_id = $1 AND user_id = $2;`, loanID, userID)
	if err != nil {
		return nil, findErr(err, "loan", loanID)
	}
	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// UpdateLoan writes the mutable repayment state of a loan.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE loans
		SET remaining_balance = $1, status = $2, loan_income_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $6 AND user_id = $7;`,
		m.RemainingBalance, m.Status, m.LoanIncomeID, m.LastUpdatedAt, m.LastUpdatedBy, m.LoanID, m.UserID,
	)
	return affectedOne(tag, err, "loan", m.LoanID)
}

func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, userID, loanID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1 AND user_id = $2;`, loanID, userID)
	return affectedOne(tag, err, "loan", loanID)
}

func (r *PgxLoanRepository) SaveLoanRepayment(ctx context.Context, repayment domain.LoanRepayment) error {
	m := mapping.ToModelLoanRepayment(repayment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO loan_repayments (repayment_id, user_id, loan_id, amount, currency_code, transfer_id,
			repayment_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.RepaymentID, m.UserID, m.LoanID, m.Amount, m.CurrencyCode, m.TransferID,
		m.RepaymentDate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "loan repayment", m.RepaymentID)
	}
	return nil
}

func (r *PgxLoanRepository) DeleteLoanRepayment(ctx context.Context, userID, repaymentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loan_repayments WHERE repayment_id = $1 AND user_id = $2;`, repaymentID, userID)
	return affectedOne(tag, err, "loan repayment", repaymentID)
}
