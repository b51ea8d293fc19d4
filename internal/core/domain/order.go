package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing,
		OrderStatusOnTheWay, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is intended from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// linear fulfillment path; cancelled is reachable from any non-terminal state.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusAccepted,
	OrderStatusAccepted:  OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusOnTheWay,
	OrderStatusOnTheWay:  OrderStatusDelivered,
}

// CanTransition reports whether from -> to is one of the intended fulfillment moves.
// Setting the current status again is allowed so repeated vendor clicks stay harmless.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return nextStatus[from] == to
}

type Order struct {
	ID              int64
	CustomerID      int64
	RestaurantID    int64
	DeliveryAddress string
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	// GatewayOrderID is the processor order opened for card payment, empty until one is.
	GatewayOrderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []OrderItem
}

// OrderItem is immutable once written; Price is the menu price at checkout time.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Quantity   int
	Price      decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return LineTotal(i.Price, i.Quantity)
}

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// RecalculateTotal is the only place an order total is derived:
// sum(quantity * price) + deliveryFee.
func RecalculateTotal(items []OrderItem, deliveryFee decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total.Add(deliveryFee)
}

// Recalculate refreshes the cached TotalAmount from o.Items.
func (o *Order) Recalculate(deliveryFee decimal.Decimal) {
	o.TotalAmount = RecalculateTotal(o.Items, deliveryFee)
}

// OrderScope restricts an order lookup to a customer or to a vendor's restaurants.
// Zero fields are not applied.
type OrderScope struct {
	CustomerID int64
	VendorID   int64
}

func (s OrderScope) Allows(o Order, restaurantVendorID int64) bool {
	if s.CustomerID != 0 && o.CustomerID != s.CustomerID {
		return false
	}
	if s.VendorID != 0 && restaurantVendorID != s.VendorID {
		return false
	}
	return true
}
