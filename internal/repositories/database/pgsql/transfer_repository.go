package pgsql

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transferColumns = `transfer_id, user_id, transfer_type, from_account_id, to_account_id, amount,
	currency_code, source_debit, destination_credit, total_fees, loan_id, transfer_date, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`,
		m.TransferID, m.UserID, m.TransferType, m.FromAccountID, m.ToAccountID, m.Amount,
		m.CurrencyCode, m.SourceDebit, m.DestinationCredit, m.TotalFees, m.LoanID, m.TransferDate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertErr(err, "transfer", m.TransferID)
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, userID, transferID string) (*domain.Transfer, error) {
	m, err := collectOne[models.Transfer](ctx, r.Pool,
		`SELECT `+transferColumns+` FROM transfers WHERE transfer_id = $1 AND user_id = $2;`, transferID, userID)
	if err != nil {
		return nil, findErr(err, "transfer", transferID)
	}
	d := mapping.ToDomainTransfer(m)
	return &d, nil
}

func (r *PgxTransferRepository) DeleteTransfer(ctx context.Context, userID, transferID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transfers WHERE transfer_id = $1 AND user_id = $2;`, transferID, userID)
	return affectedOne(tag, err, "transfer", transferID)
}
