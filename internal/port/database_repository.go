package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rl1809/food-order/internal/core/domain"
)

// Lookups return (nil, nil) when the row does not exist.

type CatalogRepository interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetRestaurantBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)

	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	GetMenuItems(ctx context.Context, ids []int64) ([]domain.MenuItem, error)
	ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
}

type OrderRepository interface {
	// RunInTx commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx OrderTx) error) error

	// GetOrder loads an order with its items, restricted to scope.
	GetOrder(ctx context.Context, orderID int64, scope domain.OrderScope) (*domain.Order, error)
	ListOrders(ctx context.Context, scope domain.OrderScope) ([]domain.Order, error)
	GetPayment(ctx context.Context, orderID int64) (*domain.Payment, error)
}

// OrderTx is the set of operations available inside one transaction.
type OrderTx interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetMenuItems(ctx context.Context, ids []int64) ([]domain.MenuItem, error)

	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateOrderItem(ctx context.Context, item *domain.OrderItem) error
	ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	UpdateOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error

	// LockOrder takes an exclusive row lock on the order for the rest of the transaction.
	LockOrder(ctx context.Context, orderID int64, scope domain.OrderScope) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	// SetGatewayOrderID binds the processor order a card payment must be made against.
	SetGatewayOrderID(ctx context.Context, orderID int64, gatewayOrderID string) error

	// UpsertPayment inserts or updates the single payment row of payment.OrderID.
	UpsertPayment(ctx context.Context, payment *domain.Payment) error
}

type AccountRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetVendorByUserID(ctx context.Context, userID int64) (*domain.Vendor, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	// GetOrCreateCustomer returns the customer profile of userID, creating an empty one.
	GetOrCreateCustomer(ctx context.Context, userID int64) (*domain.Customer, error)
}
