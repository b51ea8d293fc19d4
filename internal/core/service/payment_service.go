package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

const DefaultCurrency = "INR"

type PaymentService struct {
	orders   port.OrderRepository
	gateway  port.PaymentGateway
	events   *EventDispatcher
	logger   *slog.Logger
	currency string
}

type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
	OrderID        int64
}

// CardCheckout is what a client needs to open the processor's checkout widget.
type CardCheckout struct {
	OrderID        int64
	KeyID          string
	GatewayOrderID string
	AmountMinor    int64
	Amount         decimal.Decimal
	Currency       string
}

func NewPaymentService(orders port.OrderRepository, gateway port.PaymentGateway, events *EventDispatcher, logger *slog.Logger, currency string) *PaymentService {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PaymentService{
		orders:   orders,
		gateway:  gateway,
		events:   events,
		logger:   logger,
		currency: currency,
	}
}

// ConfirmCOD records a cash-on-delivery payment for the customer's order. Calling it again
// updates the same payment row. A pending order is accepted.
func (s *PaymentService) ConfirmCOD(ctx context.Context, customerID, orderID int64) (_ *domain.Payment, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.ConfirmCOD")
	span.SetAttributes(attribute.Int64("order.id", orderID))
	defer func() { endSpan(span, err) }()

	var (
		payment  domain.Payment
		order    *domain.Order
		previous domain.OrderStatus
	)
	err = s.orders.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		var err error
		order, err = tx.LockOrder(ctx, orderID, domain.OrderScope{CustomerID: customerID})
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
		}

		payment = domain.Payment{
			OrderID: order.ID,
			Method:  domain.PaymentMethodCashOnDelivery,
			Amount:  order.TotalAmount,
			Status:  domain.PaymentStatusPending,
		}
		if err := tx.UpsertPayment(ctx, &payment); err != nil {
			return fmt.Errorf("upsert payment: %w", err)
		}

		previous = order.Status
		return s.advanceToAccepted(ctx, tx, order, domain.OrderStatusPending)
	})
	if err != nil {
		return nil, err
	}

	s.emitPayment(order, previous)
	return &payment, nil
}

// VerifyPayment checks the processor signature and, when valid, records a successful card
// payment under an exclusive lock on the order.
func (s *PaymentService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (_ *domain.Payment, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.VerifyPayment")
	span.SetAttributes(attribute.Int64("order.id", in.OrderID))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(in.GatewayOrderID) == "" || strings.TrimSpace(in.PaymentID) == "" ||
		strings.TrimSpace(in.Signature) == "" || in.OrderID <= 0 {
		return nil, fmt.Errorf("%w: missing payment verification parameters", domain.ErrValidation)
	}

	if !s.gateway.VerifyPaymentSignature(in.GatewayOrderID, in.PaymentID, in.Signature) {
		s.logger.Warn("payment signature mismatch",
			slog.Int64("order_id", in.OrderID),
			slog.String("payment_id", in.PaymentID))
		return nil, domain.ErrSignature
	}

	var (
		payment  domain.Payment
		order    *domain.Order
		previous domain.OrderStatus
	)
	err = s.orders.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		var err error
		order, err = tx.LockOrder(ctx, in.OrderID, domain.OrderScope{})
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %d: %w", in.OrderID, domain.ErrNotFound)
		}
		// the signature only covers the processor order, so it must be the one opened for this order
		if order.GatewayOrderID == "" || order.GatewayOrderID != in.GatewayOrderID {
			s.logger.Warn("payment made against another gateway order",
				slog.Int64("order_id", order.ID),
				slog.String("gateway_order_id", in.GatewayOrderID))
			return domain.ErrSignature
		}

		payment = domain.Payment{
			OrderID:       order.ID,
			Method:        domain.PaymentMethodCard,
			Amount:        order.TotalAmount,
			Status:        domain.PaymentStatusSuccess,
			TransactionID: in.PaymentID,
		}
		if err := tx.UpsertPayment(ctx, &payment); err != nil {
			return fmt.Errorf("upsert payment: %w", err)
		}

		previous = order.Status
		return s.advanceToAccepted(ctx, tx, order, domain.OrderStatusPending, domain.OrderStatusAccepted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("card payment verified",
		slog.Int64("order_id", order.ID),
		slog.String("payment_id", in.PaymentID))
	s.emitPayment(order, previous)
	return &payment, nil
}

// StartCardPayment registers the order total with the processor and binds the processor
// order to the order, replacing any earlier one.
func (s *PaymentService) StartCardPayment(ctx context.Context, customerID, orderID int64) (_ *CardCheckout, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.StartCardPayment")
	span.SetAttributes(attribute.Int64("order.id", orderID))
	defer func() { endSpan(span, err) }()

	scope := domain.OrderScope{CustomerID: customerID}
	order, err := s.orders.GetOrder(ctx, orderID, scope)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}

	amountMinor := order.TotalAmount.Shift(2).Round(0).IntPart()
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency, fmt.Sprintf("order_%d", order.ID))
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	err = s.orders.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		locked, err := tx.LockOrder(ctx, order.ID, scope)
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if locked == nil {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
		}
		if err := tx.SetGatewayOrderID(ctx, locked.ID, gatewayOrderID); err != nil {
			return fmt.Errorf("bind gateway order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CardCheckout{
		OrderID:        order.ID,
		KeyID:          s.gateway.KeyID(),
		GatewayOrderID: gatewayOrderID,
		AmountMinor:    amountMinor,
		Amount:         order.TotalAmount,
		Currency:       s.currency,
	}, nil
}

// advanceToAccepted moves order to accepted when its current status is one of from.
// order.Status is updated in place so callers can tell whether anything changed.
func (s *PaymentService) advanceToAccepted(ctx context.Context, tx port.OrderTx, order *domain.Order, from ...domain.OrderStatus) error {
	for _, st := range from {
		if order.Status != st {
			continue
		}
		if order.Status == domain.OrderStatusAccepted {
			return nil
		}
		if err := tx.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusAccepted); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		order.Status = domain.OrderStatusAccepted
		return nil
	}
	return nil
}

func (s *PaymentService) emitPayment(order *domain.Order, previous domain.OrderStatus) {
	s.events.Emit(domain.OrderEvent{
		Type:         domain.OrderEventPaymentSaved,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
	})
	if previous != order.Status {
		s.events.Emit(domain.OrderEvent{
			Type:         domain.OrderEventStatusChanged,
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Status:       order.Status,
			Previous:     previous,
		})
	}
}
