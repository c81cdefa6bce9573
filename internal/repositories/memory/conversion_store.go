package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
)

func (s *Store) FindConversionsByTransaction(_ context.Context, userID, transactionID string, transactionType domain.TransactionType) ([]domain.TransactionConversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TransactionConversion, 0)
	for _, c := range s.conversions {
		if c.UserID == userID && c.TransactionID == transactionID && c.TransactionType == transactionType {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListConversions pages through a user's conversions newest first.
func (s *Store) ListConversions(_ context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionConversion, *string, error) {
	var (
		hasCursor bool
		cursorAt  time.Time
		cursorID  string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		hasCursor, cursorAt, cursorID = true, at, id
	}

	s.mu.RLock()
	owned := make([]domain.TransactionConversion, 0)
	for _, c := range s.conversions {
		if c.UserID != userID {
			continue
		}
		if hasCursor && !pagination.IsAfter(c.CreatedAt, c.ConversionID, cursorAt, cursorID) {
			continue
		}
		owned = append(owned, c)
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		return pagination.IsAfter(owned[j].CreatedAt, owned[j].ConversionID, owned[i].CreatedAt, owned[i].ConversionID)
	})

	if len(owned) <= limit {
		return owned, nil, nil
	}
	page := owned[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.ConversionID)
	return page, &token, nil
}

func (s *Store) SaveConversion(_ context.Context, conversion domain.TransactionConversion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversions {
		if c.ConversionID == conversion.ConversionID {
			return fmt.Errorf("%w: conversion %s", apperrors.ErrDuplicate, conversion.ConversionID)
		}
	}
	s.conversions = append(s.conversions, conversion)
	return nil
}

// DeleteConversionsByTransaction succeeds when nothing matches.
func (s *Store) DeleteConversionsByTransaction(_ context.Context, userID, transactionID string, transactionType domain.TransactionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.conversions[:0]
	for _, c := range s.conversions {
		if c.UserID == userID && c.TransactionID == transactionID && c.TransactionType == transactionType {
			continue
		}
		kept = append(kept, c)
	}
	s.conversions = kept
	return nil
}
