package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

type ConversionReader interface {
	// FindConversionsByTransaction retrieves the audit records linked to one business transaction.
	FindConversionsByTransaction(ctx context.Context, userID, transactionID string, transactionType domain.TransactionType) ([]domain.TransactionConversion, error)

	// ListConversions retrieves a user's audit records newest first.
	// nextToken is an opaque cursor from a previous page; the returned token is nil on the last page.
	ListConversions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionConversion, *string, error)
}

type ConversionWriter interface {
	SaveConversion(ctx context.Context, conversion domain.TransactionConversion) error
	DeleteConversionsByTransaction(ctx context.Context, userID, transactionID string, transactionType domain.TransactionType) error
}

type ConversionRepositoryFacade interface {
	ConversionReader
	ConversionWriter
}
