package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

type settingsDoc struct {
	Status string `json:"status" validate:"oneof=Active Inactive"`
	Rate   int    `json:"rate" validate:"gte=0"`
	Label  string `json:"label,omitempty"`
}

func defaultSettings() settingsDoc {
	return settingsDoc{Status: "Inactive", Rate: 10}
}

func TestDocument_GetReturnsDefaults(t *testing.T) {
	doc := NewDocument(kv.NewMemoryStore(), "affiliate", defaultSettings)

	got, err := doc.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), got)
}

func TestDocument_SaveAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	doc := NewDocument(store, "affiliate", defaultSettings, WithValidator(NewValidator()))

	_, err := doc.Save(ctx, "acme", settingsDoc{Status: "Active", Rate: 5})
	require.NoError(t, err)

	updated, err := doc.Update(ctx, "acme", map[string]any{"label": "spring"})
	require.NoError(t, err)
	assert.Equal(t, settingsDoc{Status: "Active", Rate: 5, Label: "spring"}, updated)

	other, err := doc.Get(ctx, "globex")
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), other)

	assert.Equal(t, []string{"affiliate_acme"}, store.Keys())
}

func TestDocument_Validation(t *testing.T) {
	doc := NewDocument(kv.NewMemoryStore(), "affiliate", defaultSettings, WithValidator(NewValidator()))

	_, err := doc.Save(context.Background(), "acme", settingsDoc{Status: "Paused"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = doc.Update(context.Background(), "acme", map[string]any{"rate": -1})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestGlobalDocument_IgnoresTenant(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	doc := NewGlobalDocument(store, "onboarding_config", defaultSettings)

	_, err := doc.Save(ctx, "acme", settingsDoc{Status: "Active"})
	require.NoError(t, err)

	got, err := doc.Get(ctx, "globex")
	require.NoError(t, err)
	assert.Equal(t, "Active", got.Status)
	assert.Equal(t, []string{"onboarding_config"}, store.Keys())
}
