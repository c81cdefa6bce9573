package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRateProvider struct {
	mock.Mock
}

func (m *mockRateProvider) GetRates(ctx context.Context, force bool) (*domain.RateTable, error) {
	args := m.Called(ctx, force)
	table, _ := args.Get(0).(*domain.RateTable)
	return table, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshRatesForcesFetch(t *testing.T) {
	rp := new(mockRateProvider)
	table := domain.NewRateTable("USD", map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")}, time.Now())
	rp.On("GetRates", mock.Anything, true).Return(table, nil).Once()

	s, err := NewRateRefreshScheduler("@every 1h", rp, discardLogger())
	require.NoError(t, err)

	s.RefreshRates()
	rp.AssertExpectations(t)
}

func TestRefreshRatesCarriesNoDeadline(t *testing.T) {
	rp := new(mockRateProvider)
	rp.On("GetRates", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return !hasDeadline
	}), true).Return(nil, errors.New("offline")).Once()

	s, err := NewRateRefreshScheduler("@every 1h", rp, discardLogger())
	require.NoError(t, err)

	s.RefreshRates()
	rp.AssertExpectations(t)
}

func TestRefreshRatesSwallowsErrors(t *testing.T) {
	rp := new(mockRateProvider)
	rp.On("GetRates", mock.Anything, true).Return(nil, errors.New("boom")).Once()

	s, err := NewRateRefreshScheduler("@hourly", rp, discardLogger())
	require.NoError(t, err)

	assert.NotPanics(t, s.RefreshRates)
	rp.AssertExpectations(t)
}

func TestInvalidScheduleRejected(t *testing.T) {
	_, err := NewRateRefreshScheduler("not a schedule", new(mockRateProvider), discardLogger())
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s, err := NewRateRefreshScheduler("@every 1h", new(mockRateProvider), discardLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
