package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
	newID func() string
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.clock = clock
	}
}

// WithIDGenerator overrides uuid.NewString for record IDs.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(b *BaseService) {
		b.newID = gen
	}
}

func newBaseService(opts ...ServiceOption) BaseService {
	b := BaseService{clock: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (s *BaseService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}

func (s *BaseService) generateID() string {
	if s.newID == nil {
		return uuid.NewString()
	}
	return s.newID()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func requirePositive(amount decimal.Decimal, field string) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be greater than zero", field))
	}
	return nil
}

// dateOr returns *t when set, otherwise fallback.
func dateOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return *t
}
