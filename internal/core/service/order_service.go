package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

const DefaultFallbackAddress = "Address not provided"

type OrderService struct {
	orders          port.OrderRepository
	sessions        port.SessionStore
	events          *EventDispatcher
	logger          *slog.Logger
	fallbackAddress string
}

type OrderDetail struct {
	Order   domain.Order
	Payment *domain.Payment
}

func NewOrderService(orders port.OrderRepository, sessions port.SessionStore, events *EventDispatcher, logger *slog.Logger, fallbackAddress string) *OrderService {
	if fallbackAddress == "" {
		fallbackAddress = DefaultFallbackAddress
	}
	return &OrderService{
		orders:          orders,
		sessions:        sessions,
		events:          events,
		logger:          logger,
		fallbackAddress: fallbackAddress,
	}
}

// Checkout turns the session cart into a pending order. The order, its items and its total
// are written in one transaction; the cart is cleared only after that commit.
func (s *OrderService) Checkout(ctx context.Context, sess domain.Session, customer domain.Customer) (_ *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "OrderService.Checkout")
	defer func() { endSpan(span, err) }()

	cart, err := s.sessions.GetCart(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() || cart.RestaurantID == nil {
		return nil, domain.ErrEmptyCart
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return nil, domain.ErrMissingPhone
	}

	token, ok, err := s.sessions.AcquireCheckout(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("acquire checkout guard: %w", err)
	}
	if !ok {
		return nil, domain.ErrCheckoutInProgress
	}
	defer func() {
		if relErr := s.sessions.ReleaseCheckout(context.WithoutCancel(ctx), sess.ID, token); relErr != nil {
			s.logger.Warn("failed to release checkout guard",
				slog.String("session_id", sess.ID), slog.String("error", relErr.Error()))
		}
	}()

	address := strings.TrimSpace(customer.Address)
	if address == "" {
		address = s.fallbackAddress
	}

	var order domain.Order
	err = s.orders.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		restaurant, err := tx.GetRestaurant(ctx, *cart.RestaurantID)
		if err != nil {
			return fmt.Errorf("get restaurant: %w", err)
		}
		if restaurant == nil {
			return fmt.Errorf("restaurant %d: %w", *cart.RestaurantID, domain.ErrNotFound)
		}
		if !restaurant.IsOpen {
			return domain.ErrRestaurantClosed
		}

		now := time.Now().UTC()
		order = domain.Order{
			CustomerID:      customer.ID,
			RestaurantID:    restaurant.ID,
			DeliveryAddress: address,
			Status:          domain.OrderStatusPending,
			TotalAmount:     decimal.Zero,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		ids := cart.MenuItemIDs()
		menuItems, err := tx.GetMenuItems(ctx, ids)
		if err != nil {
			return fmt.Errorf("get menu items: %w", err)
		}
		byID := make(map[int64]domain.MenuItem, len(menuItems))
		for _, mi := range menuItems {
			byID[mi.ID] = mi
		}

		created := 0
		for _, id := range ids {
			mi, ok := byID[id]
			if !ok {
				continue
			}
			item := domain.OrderItem{
				OrderID:    order.ID,
				MenuItemID: mi.ID,
				Quantity:   cart.Quantity(id),
				Price:      mi.Price,
			}
			if err := tx.CreateOrderItem(ctx, &item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			created++
		}
		if created == 0 {
			return domain.ErrEmptyCart
		}

		items, err := tx.ListOrderItems(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("list order items: %w", err)
		}
		order.Items = items
		order.Recalculate(restaurant.DeliveryFee)

		if err := tx.UpdateOrderTotal(ctx, order.ID, order.TotalAmount); err != nil {
			return fmt.Errorf("update order total: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			// every entry pointed at a deleted menu item
			s.clearCart(ctx, sess.ID)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("order.id", order.ID))
	s.clearCart(ctx, sess.ID)

	s.events.Emit(domain.OrderEvent{
		Type:         domain.OrderEventPlaced,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
	})
	s.logger.Info("order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("customer_id", customer.ID),
		slog.String("total", order.TotalAmount.StringFixed(2)))

	return &order, nil
}

func (s *OrderService) clearCart(ctx context.Context, sessionID string) {
	if err := s.sessions.ClearCart(context.WithoutCancel(ctx), sessionID); err != nil {
		s.logger.Error("failed to clear cart",
			slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}
}

// GetOrder returns a customer's order with its items and payment.
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID int64) (*OrderDetail, error) {
	order, err := s.orders.GetOrder(ctx, orderID, domain.OrderScope{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}

	payment, err := s.orders.GetPayment(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &OrderDetail{Order: *order, Payment: payment}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, domain.OrderScope{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
