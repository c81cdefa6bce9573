package ratesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestSource(t *testing.T, h http.HandlerFunc, opts ...Option) (*httptest.Server, func(context.Context, string) (map[string]decimal.Decimal, error)) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLimiter(rate.NewLimiter(rate.Inf, 1))}, opts...)
	src, err := New(srv.URL+"/latest", "secret", opts...)
	require.NoError(t, err)
	return srv, src.FetchRates
}

func TestFetchRatesSynthesizesBase(t *testing.T) {
	_, fetch := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"success":true,"base":"USD","rates":{"eur":0.8474576271,"INR":83.12}}`))
	})

	rates, err := fetch(context.Background(), "usd")
	require.NoError(t, err)
	assert.Equal(t, "0.8474576271", rates["EUR"].String())
	assert.Equal(t, "83.12", rates["INR"].String())
	assert.True(t, rates["USD"].Equal(decimal.NewFromInt(1)))
}

func TestFetchRatesRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	_, fetch := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.9}}`))
	}, WithRetries(2))

	rates, err := fetch(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "0.9", rates["EUR"].String())
}

func TestFetchRatesDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	_, fetch := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}, WithRetries(3))

	_, err := fetch(context.Background(), "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRatesRejectsUnsuccessfulPayload(t *testing.T) {
	_, fetch := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"description":"invalid api key"}`))
	})

	_, err := fetch(context.Background(), "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestFetchRatesEmptyRates(t *testing.T) {
	_, fetch := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{}}`))
	}, WithRetries(0))

	_, err := fetch(context.Background(), "USD")
	assert.Error(t, err)
}

func TestNewRejectsBadEndpoint(t *testing.T) {
	_, err := New("://nope", "")
	assert.Error(t, err)
}
