package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// CurrencyService serves the static catalog. Symbols and fraction digits come from go-money.
type CurrencyService struct {
	catalog []domain.Currency
	byCode  map[string]domain.Currency
}

// NewCurrencyService builds the catalog from codes; nil means domain.SupportedCurrencies.
func NewCurrencyService(codes []domain.Currency) *CurrencyService {
	if codes == nil {
		codes = domain.SupportedCurrencies
	}
	svc := &CurrencyService{
		catalog: make([]domain.Currency, 0, len(codes)),
		byCode:  make(map[string]domain.Currency, len(codes)),
	}
	for _, c := range codes {
		code := strings.ToUpper(c.CurrencyCode)
		entry := domain.Currency{
			CurrencyCode: code,
			Name:         c.Name,
			Symbol:       utils.CurrencySymbol(code),
			Precision:    utils.CurrencyFraction(code),
		}
		svc.catalog = append(svc.catalog, entry)
		svc.byCode[code] = entry
	}
	return svc
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	c, ok := s.byCode[strings.ToUpper(currencyCode)]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency %s", currencyCode))
	}
	return &c, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) []domain.Currency {
	out := make([]domain.Currency, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *CurrencyService) IsSupported(currencyCode string) bool {
	_, ok := s.byCode[strings.ToUpper(currencyCode)]
	return ok
}

func (s *CurrencyService) FormatAmount(amount decimal.Decimal, currencyCode string) string {
	return utils.FormatAmount(amount, currencyCode)
}
