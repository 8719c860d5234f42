// Package staff provides the staff and role services.
package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// StaffCollection is the collection name staff records are stored under
const StaffCollection = "staff"

// StaffSchema describes the staff collection. seed adds the demo team.
func StaffSchema(seed bool) persistence.Schema[staff.Staff] {
	schema := persistence.Schema[staff.Staff]{
		Name: StaffCollection,
		Key:  func(s staff.Staff) string { return s.ID },
	}
	if seed {
		schema.Seed = func(context.Context) ([]staff.Staff, error) { return DemoStaff(), nil }
	}
	return schema
}

// StaffService handles staff members and their earnings
type StaffService struct {
	records *persistence.Collection[staff.Staff]
	logger  *zap.Logger
	now     func() time.Time
}

// NewStaffService creates a new staff service
func NewStaffService(records *persistence.Collection[staff.Staff], logger *zap.Logger) *StaffService {
	return &StaffService{
		records: records,
		logger:  logger,
		now:     time.Now,
	}
}

// GetStaff returns every staff member of the tenant
func (s *StaffService) GetStaff(ctx context.Context, tenantID string) ([]staff.Staff, error) {
	return s.records.GetAll(ctx, tenantID)
}

// GetStaffMember returns one staff member
func (s *StaffService) GetStaffMember(ctx context.Context, tenantID, id string) (staff.Staff, error) {
	member, found, err := s.records.GetByID(ctx, tenantID, id)
	if err != nil {
		return staff.Staff{}, err
	}
	if !found {
		return staff.Staff{}, shared.NotFound("staff", id)
	}
	return member, nil
}

// AddStaff stores a new staff member at the top of the list. An empty id is
// generated. Balances, bonuses and payout history start empty whatever the
// caller sends.
func (s *StaffService) AddStaff(ctx context.Context, tenantID string, member staff.Staff) (staff.Staff, error) {
	member.TotalCommission = decimal.Zero
	member.PaidCommission = decimal.Zero
	member.TotalSales = decimal.Zero
	member.PayoutHistory = []staff.Payout{}
	member.Bonuses = []staff.Bonus{}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.Status == "" {
		member.Status = staff.StatusActive
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = s.now().UTC()
	}

	created, err := s.records.Create(ctx, tenantID, member, persistence.Prepend())
	if err != nil {
		return staff.Staff{}, err
	}
	s.logger.Info("Staff member added",
		zap.String("tenant_id", tenantID),
		zap.String("staff_id", created.ID),
		zap.String("role", created.Role))
	return created, nil
}

// UpdateStaff applies a profile edit. Balances, bonuses and payouts are
// changed through AdjustStaff only.
func (s *StaffService) UpdateStaff(ctx context.Context, tenantID, id string, profile staff.ProfilePatch) (staff.Staff, error) {
	return s.records.Update(ctx, tenantID, id, profile.Patch())
}

// AdjustStaff derives a patch from the stored staff member and applies it
// with no other write to the collection in between. An empty patch writes
// nothing.
func (s *StaffService) AdjustStaff(ctx context.Context, tenantID, id string, fn func(current staff.Staff) (staff.Patch, error)) (staff.Staff, error) {
	_, updated, err := s.records.UpdateFunc(ctx, tenantID, id, func(current staff.Staff) (any, error) {
		patch, err := fn(current)
		if err != nil || patch.Empty() {
			return nil, err
		}
		return patch, nil
	})
	return updated, err
}

// DeleteStaff removes a staff member. Deleting an unknown id is a no-op.
func (s *StaffService) DeleteStaff(ctx context.Context, tenantID, id string) error {
	return s.records.Delete(ctx, tenantID, id)
}

// AwardBonusInput describes a manual bonus
type AwardBonusInput struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// AwardBonus records a bonus and adds it to the unpaid balance
func (s *StaffService) AwardBonus(ctx context.Context, tenantID, id string, input AwardBonusInput) (staff.Staff, error) {
	if !input.Amount.IsPositive() {
		return staff.Staff{}, shared.InvalidInput("bonus amount must be positive, got %s", input.Amount)
	}

	updated, err := s.AdjustStaff(ctx, tenantID, id, func(member staff.Staff) (staff.Patch, error) {
		bonuses := append(append([]staff.Bonus{}, member.Bonuses...), staff.Bonus{
			ID:     uuid.NewString(),
			Date:   s.now().UTC(),
			Amount: input.Amount,
			Reason: input.Reason,
		})
		total := member.TotalCommission.Add(input.Amount)
		return staff.Patch{Bonuses: &bonuses, TotalCommission: &total}, nil
	})
	if err != nil {
		return staff.Staff{}, err
	}
	s.logger.Info("Bonus awarded",
		zap.String("tenant_id", tenantID),
		zap.String("staff_id", id),
		zap.String("amount", input.Amount.String()))
	return updated, nil
}
