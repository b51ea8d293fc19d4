package domain

import "time"

type OrderEventType string

const (
	OrderEventPlaced        OrderEventType = "placed"
	OrderEventStatusChanged OrderEventType = "status_changed"
	OrderEventPaymentSaved  OrderEventType = "payment_recorded"
)

type OrderEvent struct {
	ID           string         `json:"id"`
	Type         OrderEventType `json:"type"`
	OrderID      int64          `json:"order_id"`
	RestaurantID int64          `json:"restaurant_id"`
	Status       OrderStatus    `json:"status"`
	Previous     OrderStatus    `json:"previous_status,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
}
