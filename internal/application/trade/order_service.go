// Package trade provides the order service.
package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

// OrderCollection is the collection name orders are stored under
const OrderCollection = "orders"

// OrderSchema describes the orders collection. seed adds demo orders.
func OrderSchema(seed bool) persistence.Schema[trade.Order] {
	schema := persistence.Schema[trade.Order]{
		Name: OrderCollection,
		Key:  func(o trade.Order) string { return o.ID },
	}
	if seed {
		schema.Seed = func(context.Context) ([]trade.Order, error) { return DemoOrders(), nil }
	}
	return schema
}

// CommissionCalculator applies commission for an order event
type CommissionCalculator interface {
	CalculateCommissionForOrder(ctx context.Context, tenantID string, order trade.Order, trigger staff.Trigger) error
}

// OrderService handles orders and runs commissions when an order becomes
// paid or delivered
type OrderService struct {
	records     *persistence.Collection[trade.Order]
	commissions CommissionCalculator
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	records *persistence.Collection[trade.Order],
	commissions CommissionCalculator,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		records:     records,
		commissions: commissions,
		logger:      logger,
		now:         time.Now,
	}
}

// GetOrders returns every order of the tenant, newest first
func (s *OrderService) GetOrders(ctx context.Context, tenantID string) ([]trade.Order, error) {
	return s.records.GetAll(ctx, tenantID)
}

// GetOrder returns one order
func (s *OrderService) GetOrder(ctx context.Context, tenantID, id string) (trade.Order, error) {
	order, found, err := s.records.GetByID(ctx, tenantID, id)
	if err != nil {
		return trade.Order{}, err
	}
	if !found {
		return trade.Order{}, shared.NotFound("order", id)
	}
	return order, nil
}

// AddOrder stores a new order. A zero total is computed from the items.
// An order created already paid or delivered earns its commissions at once.
func (s *OrderService) AddOrder(ctx context.Context, tenantID string, order trade.Order) (trade.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Date.IsZero() {
		order.Date = s.now().UTC()
	}
	if order.Total.IsZero() {
		order.Total = order.ItemsTotal()
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = trade.PaymentPending
	}
	if order.DeliveryStatus == "" {
		order.DeliveryStatus = trade.DeliveryPending
	}
	if order.Items == nil {
		order.Items = []trade.Item{}
	}

	created, err := s.records.Create(ctx, tenantID, order, persistence.Prepend())
	if err != nil {
		return trade.Order{}, err
	}
	s.logger.Info("Order added",
		zap.String("tenant_id", tenantID),
		zap.String("order_id", created.ID),
		zap.String("total", created.Total.String()))

	if err := s.applyTransitions(ctx, tenantID, trade.Order{}, created); err != nil {
		return created, err
	}
	return created, nil
}

// UpdateOrder applies patch to an order. Moving the order to paid or
// delivered triggers the matching commission once per transition; the
// previous status is read under the collection's write lock, so concurrent
// updates in this process see each transition once.
func (s *OrderService) UpdateOrder(ctx context.Context, tenantID, id string, patch trade.Patch) (trade.Order, error) {
	before, after, err := s.records.UpdateFunc(ctx, tenantID, id, func(trade.Order) (any, error) {
		return patch, nil
	})
	if err != nil {
		return trade.Order{}, err
	}
	if err := s.applyTransitions(ctx, tenantID, before, after); err != nil {
		return after, err
	}
	return after, nil
}

// MarkPaid sets the payment status to Paid
func (s *OrderService) MarkPaid(ctx context.Context, tenantID, id string) (trade.Order, error) {
	status := trade.PaymentPaid
	return s.UpdateOrder(ctx, tenantID, id, trade.Patch{PaymentStatus: &status})
}

// MarkDelivered sets the delivery status to Delivered. fulfilledBy, when
// set, records the staff member who delivered.
func (s *OrderService) MarkDelivered(ctx context.Context, tenantID, id, fulfilledBy string) (trade.Order, error) {
	status := trade.DeliveryDelivered
	patch := trade.Patch{DeliveryStatus: &status}
	if fulfilledBy != "" {
		patch.FulfilledByStaffID = &fulfilledBy
	}
	return s.UpdateOrder(ctx, tenantID, id, patch)
}

func (s *OrderService) applyTransitions(ctx context.Context, tenantID string, before, after trade.Order) error {
	if s.commissions == nil {
		return nil
	}
	if !before.IsPaid() && after.IsPaid() {
		if err := s.commissions.CalculateCommissionForOrder(ctx, tenantID, after, staff.TriggerOrderPaid); err != nil {
			return fmt.Errorf("apply paid commission for order %s: %w", after.ID, err)
		}
	}
	if !before.IsDelivered() && after.IsDelivered() {
		if err := s.commissions.CalculateCommissionForOrder(ctx, tenantID, after, staff.TriggerOrderDelivered); err != nil {
			return fmt.Errorf("apply delivered commission for order %s: %w", after.ID, err)
		}
	}
	return nil
}
