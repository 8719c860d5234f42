package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// Document stores a single JSON object, either per tenant or once for the
// whole installation.
type Document[T any] struct {
	name     string
	store    kv.Store
	defaults func() T
	scoped   bool
	cfg      settings
	writeMu  sync.Mutex
}

// NewDocument creates a tenant-scoped document. defaults supplies the value
// returned while nothing has been saved.
func NewDocument[T any](store kv.Store, name string, defaults func() T, opts ...Option) *Document[T] {
	return &Document[T]{name: name, store: store, defaults: defaults, scoped: true, cfg: newSettings(opts)}
}

// NewGlobalDocument creates a document stored under name alone, shared by
// all tenants.
func NewGlobalDocument[T any](store kv.Store, name string, defaults func() T, opts ...Option) *Document[T] {
	d := NewDocument(store, name, defaults, opts...)
	d.scoped = false
	return d
}

func (d *Document[T]) storageKey(tenantID string) string {
	if !d.scoped {
		return d.name
	}
	return tenant.StorageKey(d.name, tenantID)
}

// Get returns the stored document, or the defaults when none was saved
func (d *Document[T]) Get(ctx context.Context, tenantID string) (T, error) {
	ctx, span := telemetry.StartSpan(ctx, "store.document.get", telemetry.AttrCollection, d.name)
	defer span.End()

	doc, err := d.load(ctx, tenantID)
	telemetry.RecordError(span, err)
	return doc, err
}

// Save validates and replaces the stored document
func (d *Document[T]) Save(ctx context.Context, tenantID string, doc T) (T, error) {
	ctx, span := telemetry.StartSpan(ctx, "store.document.save", telemetry.AttrCollection, d.name)
	defer span.End()

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if err := d.save(ctx, tenantID, doc); err != nil {
		telemetry.RecordError(span, err)
		var zero T
		return zero, err
	}
	return doc, nil
}

// Update shallow-merges patch onto the current document and saves it
func (d *Document[T]) Update(ctx context.Context, tenantID string, patch any) (T, error) {
	ctx, span := telemetry.StartSpan(ctx, "store.document.update", telemetry.AttrCollection, d.name)
	defer span.End()

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	var zero T
	current, err := d.load(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return zero, err
	}
	merged, err := merge(current, patch)
	if err == nil {
		err = d.save(ctx, tenantID, merged)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return zero, err
	}
	return merged, nil
}

func (d *Document[T]) load(ctx context.Context, tenantID string) (T, error) {
	var doc T
	if err := d.cfg.wait(ctx); err != nil {
		return doc, err
	}

	key := d.storageKey(tenantID)
	raw, found, err := d.store.Get(ctx, key)
	if err != nil {
		return doc, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		if d.defaults != nil {
			return d.defaults(), nil
		}
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

func (d *Document[T]) save(ctx context.Context, tenantID string, doc T) error {
	if err := d.cfg.check(d.name, doc); err != nil {
		return err
	}
	key := d.storageKey(tenantID)
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := d.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
