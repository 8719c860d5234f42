package marketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/marketing"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// TemplateSchema describes the template library of channel
func TemplateSchema(channel marketing.Channel, seed bool) persistence.Schema[marketing.Template] {
	schema := persistence.Schema[marketing.Template]{
		Name: channel.CollectionName(),
		Key:  func(t marketing.Template) string { return t.ID },
	}
	if seed {
		schema.Seed = func(context.Context) ([]marketing.Template, error) { return DemoTemplates(channel), nil }
	}
	return schema
}

// TemplateLibraries maps each channel to its collection
type TemplateLibraries map[marketing.Channel]*persistence.Collection[marketing.Template]

// TemplateService handles the per-channel template libraries
type TemplateService struct {
	libraries TemplateLibraries
	logger    *zap.Logger
	now       func() time.Time
}

// NewTemplateService creates a new template service
func NewTemplateService(libraries TemplateLibraries, logger *zap.Logger) *TemplateService {
	return &TemplateService{
		libraries: libraries,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TemplateService) library(channel marketing.Channel) (*persistence.Collection[marketing.Template], error) {
	lib, ok := s.libraries[channel]
	if !ok {
		return nil, shared.InvalidInput("unknown template channel %q", channel)
	}
	return lib, nil
}

// List returns every template of channel
func (s *TemplateService) List(ctx context.Context, tenantID string, channel marketing.Channel) ([]marketing.Template, error) {
	lib, err := s.library(channel)
	if err != nil {
		return nil, err
	}
	return lib.GetAll(ctx, tenantID)
}

// Get returns one template of channel
func (s *TemplateService) Get(ctx context.Context, tenantID string, channel marketing.Channel, id string) (marketing.Template, error) {
	lib, err := s.library(channel)
	if err != nil {
		return marketing.Template{}, err
	}
	tmpl, found, err := lib.GetByID(ctx, tenantID, id)
	if err != nil {
		return marketing.Template{}, err
	}
	if !found {
		return marketing.Template{}, shared.NotFound(channel.CollectionName(), id)
	}
	return tmpl, nil
}

// Create stores a new template. Variables are taken from the body when not
// given.
func (s *TemplateService) Create(ctx context.Context, tenantID string, channel marketing.Channel, tmpl marketing.Template) (marketing.Template, error) {
	lib, err := s.library(channel)
	if err != nil {
		return marketing.Template{}, err
	}
	if tmpl.ID == "" {
		tmpl.ID = uuid.NewString()
	}
	tmpl.Channel = channel
	if len(tmpl.Variables) == 0 {
		tmpl.Variables = marketing.ExtractVariables(tmpl.Subject + " " + tmpl.Body)
	}
	tmpl.UpdatedAt = s.now().UTC()

	created, err := lib.Create(ctx, tenantID, tmpl, persistence.Prepend())
	if err != nil {
		return marketing.Template{}, err
	}
	s.logger.Info("Template created",
		zap.String("tenant_id", tenantID),
		zap.String("channel", string(channel)),
		zap.String("template_id", created.ID))
	return created, nil
}

// Update applies patch to a template. A new body refreshes the variables
// unless the patch sets them.
func (s *TemplateService) Update(ctx context.Context, tenantID string, channel marketing.Channel, id string, patch marketing.TemplatePatch) (marketing.Template, error) {
	lib, err := s.library(channel)
	if err != nil {
		return marketing.Template{}, err
	}
	if patch.Variables == nil && (patch.Body != nil || patch.Subject != nil) {
		current, err := s.Get(ctx, tenantID, channel, id)
		if err != nil {
			return marketing.Template{}, err
		}
		subject, body := current.Subject, current.Body
		if patch.Subject != nil {
			subject = *patch.Subject
		}
		if patch.Body != nil {
			body = *patch.Body
		}
		vars := marketing.ExtractVariables(subject + " " + body)
		if vars == nil {
			vars = []string{}
		}
		patch.Variables = &vars
	}
	now := s.now().UTC()
	patch.UpdatedAt = &now
	return lib.Update(ctx, tenantID, id, patch)
}

// Delete removes a template
func (s *TemplateService) Delete(ctx context.Context, tenantID string, channel marketing.Channel, id string) error {
	lib, err := s.library(channel)
	if err != nil {
		return err
	}
	return lib.Delete(ctx, tenantID, id)
}
