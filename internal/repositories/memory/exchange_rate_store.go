package memory

import (
	"context"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

func (s *Store) FindLatestRateTable(_ context.Context, baseCurrency string) (*domain.RateTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := s.rateTables[strings.ToUpper(baseCurrency)]
	if len(tables) == 0 {
		return nil, apperrors.NewNotFoundError("no rate table stored for " + baseCurrency)
	}
	latest := tables[len(tables)-1]
	return domain.NewRateTable(latest.BaseCurrency, latest.Rates, latest.FetchedAt), nil
}

// SaveRateTable appends a snapshot and drops the oldest ones beyond the retention bound.
func (s *Store) SaveRateTable(_ context.Context, table domain.RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := domain.NewRateTable(table.BaseCurrency, table.Rates, table.FetchedAt)
	tables := append(s.rateTables[snapshot.BaseCurrency], *snapshot)
	if len(tables) > maxRateTablesPerBase {
		tables = tables[len(tables)-maxRateTablesPerBase:]
	}
	s.rateTables[snapshot.BaseCurrency] = tables
	return nil
}
