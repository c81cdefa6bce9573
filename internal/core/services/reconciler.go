package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/saga"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reconciler keeps account balances explained by ledger records. Every balance
// change it makes is paired with a record and a conversion audit entry, and runs
// inside a saga so a failed step undoes the earlier ones.
type reconciler struct {
	BaseService
	converter   portssvc.CurrencyConverterSvc
	accounts    portsrepo.AccountRepositoryFacade
	conversions portsrepo.ConversionRepositoryFacade
}

func newReconciler(base BaseService, converter portssvc.CurrencyConverterSvc, accounts portsrepo.AccountRepositoryFacade, conversions portsrepo.ConversionRepositoryFacade) *reconciler {
	return &reconciler{
		BaseService: base,
		converter:   converter,
		accounts:    accounts,
		conversions: conversions,
	}
}

// ledgerEntry is a record whose existence moves money into or out of an account.
type ledgerEntry struct {
	userID        string
	transactionID string
	txType        domain.TransactionType
	accountID     string
	amount        decimal.Decimal
	currency      string
	direction     accounting.Direction
	save          func(ctx context.Context) error
	remove        func(ctx context.Context) error
}

func (r *reconciler) loadAccount(ctx context.Context, userID, accountID string) (*domain.BankAccount, error) {
	account, err := r.accounts.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s", accountID))
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return account, nil
}

// convertForAccount converts an amount into the account's currency.
func (r *reconciler) convertForAccount(ctx context.Context, amount decimal.Decimal, currency string, account *domain.BankAccount) (*domain.ConversionResult, error) {
	conv, err := r.converter.ConvertAmount(ctx, amount, currency, account.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s %s to %s: %w", amount, currency, account.CurrencyCode, err)
	}
	return conv, nil
}

func (r *reconciler) adjustBalanceStep(name, userID, accountID string, delta decimal.Decimal) saga.Step {
	return saga.Step{
		Name: name,
		Action: func(ctx context.Context) error {
			_, err := r.accounts.AdjustBalance(ctx, userID, accountID, delta, r.now())
			return err
		},
		Compensate: func(ctx context.Context) error {
			_, err := r.accounts.AdjustBalance(ctx, userID, accountID, delta.Neg(), r.now())
			return err
		},
	}
}

func (r *reconciler) saveConversionStep(userID, transactionID string, txType domain.TransactionType, result domain.ConversionResult) saga.Step {
	conversion := domain.TransactionConversion{
		ConversionID:     r.generateID(),
		UserID:           userID,
		TransactionID:    transactionID,
		TransactionType:  txType,
		ConversionResult: result,
		CreatedAt:        r.now(),
	}
	return saga.Step{
		Name: "save_conversion",
		Action: func(ctx context.Context) error {
			return r.conversions.SaveConversion(ctx, conversion)
		},
		Compensate: func(ctx context.Context) error {
			return r.conversions.DeleteConversionsByTransaction(ctx, userID, transactionID, txType)
		},
	}
}

// deleteConversionsStep removes a transaction's audit records and restores them on compensation.
func (r *reconciler) deleteConversionsStep(userID, transactionID string, txType domain.TransactionType) saga.Step {
	var snapshot []domain.TransactionConversion
	return saga.Step{
		Name: "delete_conversions",
		Action: func(ctx context.Context) error {
			existing, err := r.conversions.FindConversionsByTransaction(ctx, userID, transactionID, txType)
			if err != nil {
				return err
			}
			snapshot = existing
			return r.conversions.DeleteConversionsByTransaction(ctx, userID, transactionID, txType)
		},
		Compensate: func(ctx context.Context) error {
			var errs []error
			for _, c := range snapshot {
				errs = append(errs, r.conversions.SaveConversion(ctx, c))
			}
			return errors.Join(errs...)
		},
	}
}

func recordStep(name string, do, undo func(ctx context.Context) error) saga.Step {
	return saga.Step{Name: name, Action: do, Compensate: undo}
}

// createEntry applies the entry's balance delta, saves the record and its
// conversion audit. Entries without an account only save the record.
func (r *reconciler) createEntry(ctx context.Context, e ledgerEntry) (*domain.ConversionResult, error) {
	sg := saga.New("create_"+string(e.txType), r.GetLogger(ctx))

	var conv *domain.ConversionResult
	if e.accountID != "" {
		account, err := r.loadAccount(ctx, e.userID, e.accountID)
		if err != nil {
			return nil, err
		}
		conv, err = r.convertForAccount(ctx, e.amount, e.currency, account)
		if err != nil {
			return nil, err
		}
		sg.AddStep(r.adjustBalanceStep("apply_balance", e.userID, account.AccountID, accounting.SignedDelta(conv.ConvertedAmount, e.direction)))
	}

	sg.AddStep(recordStep("save_"+string(e.txType), e.save, e.remove))
	if conv != nil {
		sg.AddStep(r.saveConversionStep(e.userID, e.transactionID, e.txType, *conv))
	}

	if err := sg.Execute(ctx); err != nil {
		r.LogError(ctx, err, "Failed to create ledger entry",
			slog.String("transaction_type", string(e.txType)),
			slog.String("transaction_id", e.transactionID))
		return nil, err
	}
	return conv, nil
}

// deleteEntry reverses the entry's balance delta with a fresh conversion of the
// original amount into the account's current currency, then deletes the audit
// records and the record itself. The stored conversion rate is not replayed, so
// under rate drift the reversal can differ from the original movement.
func (r *reconciler) deleteEntry(ctx context.Context, e ledgerEntry) error {
	sg := saga.New("delete_"+string(e.txType), r.GetLogger(ctx))

	// Only entries that moved a balance have audit records; ledger-only entries
	// such as transfer fee expenses are deleted without touching the account.
	audits, err := r.conversions.FindConversionsByTransaction(ctx, e.userID, e.transactionID, e.txType)
	if err != nil {
		return fmt.Errorf("failed to load conversion audit: %w", err)
	}

	if e.accountID != "" && len(audits) > 0 {
		account, err := r.loadAccount(ctx, e.userID, e.accountID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			r.LogInfo(ctx, "Linked account no longer exists, skipping balance reversal",
				slog.String("account_id", e.accountID),
				slog.String("transaction_id", e.transactionID))
		case err != nil:
			return err
		default:
			conv, err := r.convertForAccount(ctx, e.amount, e.currency, account)
			if err != nil {
				return err
			}
			sg.AddStep(r.adjustBalanceStep("reverse_balance", e.userID, account.AccountID,
				accounting.SignedDelta(conv.ConvertedAmount, e.direction.Reverse())))
		}
	}

	sg.AddStep(r.deleteConversionsStep(e.userID, e.transactionID, e.txType))
	sg.AddStep(recordStep("delete_"+string(e.txType), e.remove, e.save))

	if err := sg.Execute(ctx); err != nil {
		r.LogError(ctx, err, "Failed to delete ledger entry",
			slog.String("transaction_type", string(e.txType)),
			slog.String("transaction_id", e.transactionID))
		return err
	}
	return nil
}
