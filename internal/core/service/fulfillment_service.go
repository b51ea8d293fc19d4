package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

// FulfillmentService applies vendor-initiated status changes. Only ownership is checked
// unless strict is set, in which case moves outside the fulfillment path are rejected.
type FulfillmentService struct {
	orders port.OrderRepository
	events *EventDispatcher
	logger *slog.Logger
	strict bool
}

func NewFulfillmentService(orders port.OrderRepository, events *EventDispatcher, logger *slog.Logger, strict bool) *FulfillmentService {
	return &FulfillmentService{orders: orders, events: events, logger: logger, strict: strict}
}

func (s *FulfillmentService) ApplyAction(ctx context.Context, vendorID, orderID int64, action domain.VendorAction) (*domain.Order, error) {
	target, err := action.TargetStatus()
	if err != nil {
		return nil, err
	}
	return s.SetStatus(ctx, vendorID, orderID, target)
}

// SetStatus changes the status of an order that belongs to one of the vendor's restaurants.
// Orders of other vendors are reported as not found.
func (s *FulfillmentService) SetStatus(ctx context.Context, vendorID, orderID int64, target domain.OrderStatus) (_ *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "FulfillmentService.SetStatus")
	span.SetAttributes(
		attribute.Int64("order.id", orderID),
		attribute.String("order.target_status", string(target)))
	defer func() { endSpan(span, err) }()

	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, string(target))
	}

	var (
		order    *domain.Order
		previous domain.OrderStatus
	)
	err = s.orders.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		var err error
		order, err = tx.LockOrder(ctx, orderID, domain.OrderScope{VendorID: vendorID})
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrPermission)
		}

		previous = order.Status
		if s.strict && !domain.CanTransition(previous, target) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, previous, target)
		}
		if previous == target {
			return nil
		}

		if err := tx.UpdateOrderStatus(ctx, order.ID, target); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		order.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous != order.Status {
		s.events.Emit(domain.OrderEvent{
			Type:         domain.OrderEventStatusChanged,
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Status:       order.Status,
			Previous:     previous,
		})
		s.logger.Info("order status changed",
			slog.Int64("order_id", order.ID),
			slog.Int64("vendor_id", vendorID),
			slog.String("from", string(previous)),
			slog.String("to", string(order.Status)))
	}
	return order, nil
}

func (s *FulfillmentService) ListOrders(ctx context.Context, vendorID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, domain.OrderScope{VendorID: vendorID})
	if err != nil {
		return nil, fmt.Errorf("list vendor orders: %w", err)
	}
	return orders, nil
}
