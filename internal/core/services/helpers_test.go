package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// fakeClock is a settable time source shared by every service under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(at time.Time) *fakeClock {
	return &fakeClock{now: at}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// eurRates quotes against EUR: 1 EUR = 1.18 USD = 98.0826 INR.
func eurRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("1.18"),
		"INR": decimal.RequireFromString("98.0826"),
		"GBP": decimal.RequireFromString("0.85"),
		"XXX": decimal.Zero,
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
