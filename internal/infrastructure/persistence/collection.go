// Package persistence implements the tenant-scoped entity store. Each
// collection is persisted as one JSON array per tenant in a kv medium under
// the key "<collection>_<tenant>".
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// Schema names a collection and tells it how to key and seed its records
type Schema[T any] struct {
	Name string
	Key  KeyFunc[T]
	Seed SeedFunc[T]
}

// Collection stores records of one type. Every operation loads and rewrites
// the whole tenant array; writes through one Collection are serialized.
type Collection[T any] struct {
	schema  Schema[T]
	store   kv.Store
	cfg     settings
	writeMu sync.Mutex
	seeding singleflight.Group
}

// CreateOption adjusts where Create inserts a record
type CreateOption func(*createOptions)

type createOptions struct {
	prepend bool
}

// Prepend inserts the new record at the front of the collection
func Prepend() CreateOption {
	return func(o *createOptions) {
		o.prepend = true
	}
}

// NewCollection creates a collection on store
func NewCollection[T any](store kv.Store, schema Schema[T], opts ...Option) *Collection[T] {
	return &Collection[T]{
		schema: schema,
		store:  store,
		cfg:    newSettings(opts),
	}
}

// Name returns the collection name
func (c *Collection[T]) Name() string {
	return c.schema.Name
}

// GetAll returns every record of the tenant. An empty tenant is seeded on
// first access and the seed result is persisted.
func (c *Collection[T]) GetAll(ctx context.Context, tenantID string) ([]T, error) {
	ctx, span := c.span(ctx, "get_all", tenantID)
	defer span.End()

	records, err := c.load(ctx, tenantID)
	telemetry.RecordError(span, err)
	return records, err
}

// GetByID returns the record with the given key. A missing record is
// reported through found, not as an error.
func (c *Collection[T]) GetByID(ctx context.Context, tenantID, key string) (record T, found bool, err error) {
	ctx, span := c.span(ctx, "get_by_id", tenantID, telemetry.AttrRecordKey, key)
	defer span.End()

	records, err := c.load(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return record, false, err
	}
	if i := c.indexOf(records, key); i >= 0 {
		return records[i], true, nil
	}
	return record, false, nil
}

// Create adds record and returns it unchanged. The key must be set and
// unused within the tenant.
func (c *Collection[T]) Create(ctx context.Context, tenantID string, record T, opts ...CreateOption) (T, error) {
	ctx, span := c.span(ctx, "create", tenantID)
	defer span.End()

	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	created, err := c.create(ctx, tenantID, record, o)
	telemetry.RecordError(span, err)
	return created, err
}

func (c *Collection[T]) create(ctx context.Context, tenantID string, record T, o createOptions) (T, error) {
	var zero T
	key := c.schema.Key(record)
	if key == "" {
		return zero, shared.InvalidInput("%s record has an empty key", c.schema.Name)
	}
	if err := c.cfg.check(c.schema.Name, record); err != nil {
		return zero, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	records, err := c.load(ctx, tenantID)
	if err != nil {
		return zero, err
	}
	if c.indexOf(records, key) >= 0 {
		return zero, shared.NewDomainErrorf(shared.ErrAlreadyExists.Code, "%s %q already exists", c.schema.Name, key)
	}

	if o.prepend {
		records = slices.Insert(records, 0, record)
	} else {
		records = append(records, record)
	}
	if err := c.save(ctx, tenantID, records); err != nil {
		return zero, err
	}
	return record, nil
}

// Update shallow-merges patch onto the record with the given key and
// returns the merged record. patch is any value encoding to a JSON object,
// typically a struct of pointer fields tagged omitempty.
func (c *Collection[T]) Update(ctx context.Context, tenantID, key string, patch any) (T, error) {
	ctx, span := c.span(ctx, "update", tenantID, telemetry.AttrRecordKey, key)
	defer span.End()

	updated, err := c.update(ctx, tenantID, key, patch)
	telemetry.RecordError(span, err)
	return updated, err
}

// UpdateFunc derives a patch from the current record while holding the write
// lock, so no other write made through this collection can interleave. A nil
// patch leaves the record untouched. Both the record as fn saw it and the
// merged result are returned.
func (c *Collection[T]) UpdateFunc(ctx context.Context, tenantID, key string, fn func(current T) (any, error)) (before, after T, err error) {
	ctx, span := c.span(ctx, "update", tenantID, telemetry.AttrRecordKey, key)
	defer span.End()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	records, i, err := c.locate(ctx, tenantID, key)
	if err != nil {
		telemetry.RecordError(span, err)
		return before, after, err
	}
	before = records[i]
	patch, err := fn(before)
	if err != nil {
		telemetry.RecordError(span, err)
		return before, after, err
	}
	if patch == nil {
		return before, before, nil
	}
	after, err = c.apply(ctx, tenantID, records, i, patch)
	telemetry.RecordError(span, err)
	return before, after, err
}

func (c *Collection[T]) update(ctx context.Context, tenantID, key string, patch any) (T, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	records, i, err := c.locate(ctx, tenantID, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.apply(ctx, tenantID, records, i, patch)
}

func (c *Collection[T]) locate(ctx context.Context, tenantID, key string) ([]T, int, error) {
	records, err := c.load(ctx, tenantID)
	if err != nil {
		return nil, -1, err
	}
	i := c.indexOf(records, key)
	if i < 0 {
		return nil, -1, shared.NotFound(c.schema.Name, key)
	}
	return records, i, nil
}

// apply merges patch onto records[i] and persists; callers hold writeMu
func (c *Collection[T]) apply(ctx context.Context, tenantID string, records []T, i int, patch any) (T, error) {
	var zero T
	key := c.schema.Key(records[i])
	merged, err := merge(records[i], patch)
	if err != nil {
		return zero, err
	}
	if got := c.schema.Key(merged); got != key {
		return zero, shared.InvalidInput("%s key cannot change from %q to %q", c.schema.Name, key, got)
	}
	if err := c.cfg.check(c.schema.Name, merged); err != nil {
		return zero, err
	}

	records[i] = merged
	if err := c.save(ctx, tenantID, records); err != nil {
		return zero, err
	}
	return merged, nil
}

// Delete removes the record with the given key. Deleting a missing record
// is a no-op.
func (c *Collection[T]) Delete(ctx context.Context, tenantID, key string) error {
	ctx, span := c.span(ctx, "delete", tenantID, telemetry.AttrRecordKey, key)
	defer span.End()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	records, err := c.load(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	i := c.indexOf(records, key)
	if i < 0 {
		return nil
	}
	err = c.save(ctx, tenantID, slices.Delete(records, i, i+1))
	telemetry.RecordError(span, err)
	return err
}

// Reset drops the tenant's stored array so the next read seeds again
func (c *Collection[T]) Reset(ctx context.Context, tenantID string) error {
	ctx, span := c.span(ctx, "reset", tenantID)
	defer span.End()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.store.Delete(ctx, c.storageKey(tenantID)); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("reset %s: %w", c.storageKey(tenantID), err)
	}
	return nil
}

func (c *Collection[T]) storageKey(tenantID string) string {
	return tenant.StorageKey(c.schema.Name, tenantID)
}

func (c *Collection[T]) indexOf(records []T, key string) int {
	return slices.IndexFunc(records, func(r T) bool { return c.schema.Key(r) == key })
}

func (c *Collection[T]) load(ctx context.Context, tenantID string) ([]T, error) {
	if err := c.cfg.wait(ctx); err != nil {
		return nil, err
	}

	key := c.storageKey(tenantID)
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		raw, err = c.seed(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	return c.decode(key, raw)
}

// seed initializes an empty tenant array. Concurrent first readers share
// one seed run; each decodes its own copy of the persisted bytes.
func (c *Collection[T]) seed(ctx context.Context, key string) ([]byte, error) {
	v, err, _ := c.seeding.Do(key, func() (any, error) {
		raw, found, err := c.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if found {
			return raw, nil
		}

		records := []T{}
		if c.schema.Seed != nil {
			seeded, err := c.schema.Seed(ctx)
			if err != nil {
				return nil, fmt.Errorf("seed %s: %w", key, err)
			}
			if seeded != nil {
				records = seeded
			}
		}

		raw, err = json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		if err := c.store.Set(ctx, key, raw); err != nil {
			return nil, fmt.Errorf("persist %s: %w", key, err)
		}
		c.cfg.logger.Debug("Seeded collection",
			zap.String("collection", c.schema.Name),
			zap.String("key", key),
			zap.Int("records", len(records)),
		)
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Collection[T]) decode(key string, raw []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, tenantID string, records []T) error {
	key := c.storageKey(tenantID)
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (c *Collection[T]) span(ctx context.Context, op, tenantID string, keyValues ...any) (context.Context, trace.Span) {
	attrs := append([]any{
		telemetry.AttrCollection, c.schema.Name,
		telemetry.AttrTenantID, tenant.Resolve(tenantID),
	}, keyValues...)
	return telemetry.StartSpan(ctx, "store."+op, attrs...)
}
