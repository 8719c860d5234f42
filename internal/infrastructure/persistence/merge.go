package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/erp/backoffice/internal/domain/shared"
)

// merge overlays the top-level fields of patch onto record. Both are encoded
// as JSON objects; fields missing from the patch keep the record's value.
// Nested objects are replaced, not merged.
func merge[T any](record T, patch any) (T, error) {
	var zero T

	base, err := toObject(record)
	if err != nil {
		return zero, fmt.Errorf("encode record: %w", err)
	}
	overlay, err := toObject(patch)
	if err != nil {
		return zero, shared.InvalidInput("patch must be a JSON object: %v", err)
	}
	for field, value := range overlay {
		base[field] = value
	}

	raw, err := json.Marshal(base)
	if err != nil {
		return zero, fmt.Errorf("encode merged record: %w", err)
	}
	var merged T
	if err := json.Unmarshal(raw, &merged); err != nil {
		return zero, shared.InvalidInput("patch does not fit the record: %v", err)
	}
	return merged, nil
}

func toObject(v any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	obj := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
