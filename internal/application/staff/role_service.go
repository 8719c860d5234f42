package staff

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// RoleCollection is the collection name roles are stored under
const RoleCollection = "roles"

// RoleSchema describes the roles collection, keyed by role name
func RoleSchema(seed bool) persistence.Schema[staff.Role] {
	schema := persistence.Schema[staff.Role]{
		Name: RoleCollection,
		Key:  func(r staff.Role) string { return r.Name },
	}
	if seed {
		schema.Seed = func(context.Context) ([]staff.Role, error) { return DemoRoles(), nil }
	}
	return schema
}

// RoleService handles roles and their commission rules
type RoleService struct {
	records *persistence.Collection[staff.Role]
	logger  *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(records *persistence.Collection[staff.Role], logger *zap.Logger) *RoleService {
	return &RoleService{
		records: records,
		logger:  logger,
	}
}

// GetRoles returns every role of the tenant
func (s *RoleService) GetRoles(ctx context.Context, tenantID string) ([]staff.Role, error) {
	return s.records.GetAll(ctx, tenantID)
}

// GetRole returns the role called name
func (s *RoleService) GetRole(ctx context.Context, tenantID, name string) (staff.Role, error) {
	role, found, err := s.records.GetByID(ctx, tenantID, name)
	if err != nil {
		return staff.Role{}, err
	}
	if !found {
		return staff.Role{}, shared.NotFound("role", name)
	}
	return role, nil
}

// AddRole stores a new role. Rules without an id get one.
func (s *RoleService) AddRole(ctx context.Context, tenantID string, role staff.Role) (staff.Role, error) {
	if role.CommissionRules == nil {
		role.CommissionRules = []staff.CommissionRule{}
	}
	assignRuleIDs(role.CommissionRules)

	created, err := s.records.Create(ctx, tenantID, role)
	if err != nil {
		return staff.Role{}, err
	}
	s.logger.Info("Role added",
		zap.String("tenant_id", tenantID),
		zap.String("role", created.Name),
		zap.Int("rules", len(created.CommissionRules)))
	return created, nil
}

// UpdateRole applies patch to the role called name
func (s *RoleService) UpdateRole(ctx context.Context, tenantID, name string, patch staff.RolePatch) (staff.Role, error) {
	if patch.CommissionRules != nil {
		rules := append([]staff.CommissionRule{}, *patch.CommissionRules...)
		assignRuleIDs(rules)
		patch.CommissionRules = &rules
	}
	return s.records.Update(ctx, tenantID, name, patch)
}

// DeleteRole removes a role. Staff referencing it are left as they are.
func (s *RoleService) DeleteRole(ctx context.Context, tenantID, name string) error {
	return s.records.Delete(ctx, tenantID, name)
}

func assignRuleIDs(rules []staff.CommissionRule) {
	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = uuid.NewString()
		}
	}
}
