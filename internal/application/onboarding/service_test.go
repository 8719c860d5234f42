package onboarding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/tenant"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

func newService(store kv.Store) *Service {
	doc := persistence.NewGlobalDocument[tenant.OnboardingConfig](store, ConfigDocument, nil,
		persistence.WithValidator(persistence.NewValidator()))
	return NewService(doc, zap.NewNop())
}

func TestService_ResolveTenant(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := newService(store)
	ctx := context.Background()

	id, err := svc.ResolveTenant(ctx)
	require.NoError(t, err)
	assert.Equal(t, tenant.DefaultID, id)

	saved, err := svc.SaveConfig(ctx, tenant.OnboardingConfig{StoreName: "Acme", Subdomain: " Acme-Shop ", Currency: "idr"})
	require.NoError(t, err)
	assert.Equal(t, "acme-shop", saved.Subdomain)
	assert.Equal(t, "IDR", saved.Currency)

	id, err = svc.ResolveTenant(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acme-shop", id)
	assert.Contains(t, store.Keys(), ConfigDocument)
}

func TestService_SaveConfigRejectsBadInput(t *testing.T) {
	svc := newService(kv.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.SaveConfig(ctx, tenant.OnboardingConfig{Subdomain: "acme_shop"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.SaveConfig(ctx, tenant.OnboardingConfig{Currency: "EURO"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
