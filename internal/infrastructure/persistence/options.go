package persistence

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// KeyFunc extracts the primary key of a record
type KeyFunc[T any] func(T) string

// SeedFunc produces the initial records of an empty collection
type SeedFunc[T any] func(ctx context.Context) ([]T, error)

// Options shared by collections and documents
type settings struct {
	latency  time.Duration
	validate *validator.Validate
	logger   *zap.Logger
}

// Option configures a Collection or a Document
type Option func(*settings)

// WithReadLatency makes every read wait d before touching the medium
func WithReadLatency(d time.Duration) Option {
	return func(s *settings) {
		s.latency = d
	}
}

// WithValidator validates records with v before they are persisted
func WithValidator(v *validator.Validate) Option {
	return func(s *settings) {
		s.validate = v
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// wait blocks for the configured latency or until ctx is done
func (s settings) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewValidator returns the validator used at the store boundary
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
