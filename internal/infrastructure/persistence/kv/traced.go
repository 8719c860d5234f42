package kv

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// TracedStore wraps a Store with one span per medium call
type TracedStore struct {
	next   Store
	medium string
}

// WithTracing wraps next so every call records a kv.<op> span
func WithTracing(next Store, medium string) *TracedStore {
	return &TracedStore{next: next, medium: medium}
}

// Get implements Store
func (s *TracedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "kv.get", "kv.medium", s.medium, "kv.key", key)
	defer span.End()
	value, found, err := s.next.Get(ctx, key)
	telemetry.RecordError(span, err)
	span.SetAttributes(attribute.Bool("kv.found", found))
	return value, found, err
}

// Set implements Store
func (s *TracedStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := telemetry.StartSpan(ctx, "kv.set", "kv.medium", s.medium, "kv.key", key, "kv.bytes", len(value))
	defer span.End()
	err := s.next.Set(ctx, key, value)
	telemetry.RecordError(span, err)
	return err
}

// Delete implements Store
func (s *TracedStore) Delete(ctx context.Context, key string) error {
	ctx, span := telemetry.StartSpan(ctx, "kv.delete", "kv.medium", s.medium, "kv.key", key)
	defer span.End()
	err := s.next.Delete(ctx, key)
	telemetry.RecordError(span, err)
	return err
}

// Close implements Store
func (s *TracedStore) Close() error {
	return s.next.Close()
}
