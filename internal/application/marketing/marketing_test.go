package marketing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/persistence/kv"
)

func ptr[T any](v T) *T { return &v }

func TestDiscountService(t *testing.T) {
	records := persistence.NewCollection(kv.NewMemoryStore(), DiscountSchema(true),
		persistence.WithValidator(persistence.NewValidator()))
	svc := NewDiscountService(records, zap.NewNop())
	ctx := context.Background()

	created, err := svc.AddDiscount(ctx, "acme", marketing.Discount{Code: " summer5 ", Type: marketing.DiscountPercentage, Value: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER5", created.Code)
	assert.Equal(t, marketing.DiscountActive, created.Status)

	_, err = svc.AddDiscount(ctx, "acme", marketing.Discount{Code: "summer5", Type: marketing.DiscountPercentage})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.AddDiscount(ctx, "acme", marketing.Discount{Code: "HUGE", Type: marketing.DiscountPercentage, Value: decimal.NewFromInt(150)})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	updated, err := svc.UpdateDiscount(ctx, "acme", "summer5", marketing.DiscountPatch{Status: ptr(marketing.DiscountDisabled)})
	require.NoError(t, err)
	assert.Equal(t, marketing.DiscountDisabled, updated.Status)

	require.NoError(t, svc.DeleteDiscount(ctx, "acme", "SUMMER5"))
	_, err = svc.GetDiscount(ctx, "acme", "summer5")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, err := svc.GetDiscounts(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, all, len(DemoDiscounts()))
}

func TestCampaignService(t *testing.T) {
	records := persistence.NewCollection(kv.NewMemoryStore(), CampaignSchema(false),
		persistence.WithValidator(persistence.NewValidator()))
	svc := NewCampaignService(records, zap.NewNop())
	ctx := context.Background()

	created, err := svc.AddCampaign(ctx, "acme", marketing.Campaign{Name: "Promo", Channel: marketing.CampaignSMS})
	require.NoError(t, err)
	assert.Equal(t, marketing.CampaignDraft, created.Status)

	_, err = svc.UpdateCampaign(ctx, "acme", created.ID, marketing.CampaignPatch{Sent: ptr(10), Opened: ptr(20)})
	assert.ErrorIs(t, err, shared.ErrInvalidInput, "opened cannot exceed sent")

	updated, err := svc.UpdateCampaign(ctx, "acme", created.ID, marketing.CampaignPatch{Sent: ptr(10), Opened: ptr(4)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(updated.OpenRate()))

	_, err = svc.GetCampaign(ctx, "acme", "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func newTemplateService(seed bool) *TemplateService {
	store := kv.NewMemoryStore()
	libs := make(TemplateLibraries)
	for _, ch := range marketing.Channels {
		libs[ch] = persistence.NewCollection(store, TemplateSchema(ch, seed),
			persistence.WithValidator(persistence.NewValidator()))
	}
	return NewTemplateService(libs, zap.NewNop())
}

func TestTemplateService_ChannelsAreSeparate(t *testing.T) {
	svc := newTemplateService(true)
	ctx := context.Background()

	for _, ch := range marketing.Channels {
		list, err := svc.List(ctx, "acme", ch)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, ch, list[0].Channel)
	}

	_, err := svc.List(ctx, "acme", "fax")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestTemplateService_CRUD(t *testing.T) {
	svc := newTemplateService(false)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acme", marketing.ChannelSMS, marketing.Template{Name: "OTP", Body: "Code {{code}}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"code"}, created.Variables)
	assert.Equal(t, marketing.ChannelSMS, created.Channel)

	_, err = svc.Get(ctx, "acme", marketing.ChannelEmail, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	updated, err := svc.Update(ctx, "acme", marketing.ChannelSMS, created.ID, marketing.TemplatePatch{Body: ptr("Hi {{name}}, code {{code}}")})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "code"}, updated.Variables)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	require.NoError(t, svc.Delete(ctx, "acme", marketing.ChannelSMS, created.ID))
	list, err := svc.List(ctx, "acme", marketing.ChannelSMS)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAffiliateService(t *testing.T) {
	doc := persistence.NewDocument(kv.NewMemoryStore(), AffiliateDocument, marketing.DefaultAffiliateSettings,
		persistence.WithValidator(persistence.NewValidator()))
	svc := NewAffiliateService(doc, zap.NewNop())
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, marketing.AffiliateInactive, settings.Status)

	updated, err := svc.UpdateSettings(ctx, "acme", marketing.AffiliateSettingsPatch{Status: ptr(marketing.AffiliateActive)})
	require.NoError(t, err)
	assert.Equal(t, marketing.AffiliateActive, updated.Status)
	assert.True(t, decimal.NewFromInt(10).Equal(updated.CommissionRate))

	other, err := svc.GetSettings(ctx, "globex")
	require.NoError(t, err)
	assert.Equal(t, marketing.AffiliateInactive, other.Status)

	_, err = svc.UpdateSettings(ctx, "acme", marketing.AffiliateSettingsPatch{CookieDays: ptr(1000)})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
