package handler

import (
	"time"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/core/service"
)

// Money is rendered as a fixed two-decimal string.

type restaurantResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	CuisineType  string `json:"cuisine_type"`
	Rating       string `json:"rating"`
	DeliveryTime int    `json:"delivery_time"`
	DeliveryFee  string `json:"delivery_fee"`
	IsOpen       bool   `json:"is_open"`
}

func toRestaurant(r domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		CuisineType:  r.CuisineType,
		Rating:       r.Rating.StringFixed(2),
		DeliveryTime: r.DeliveryTime,
		DeliveryFee:  r.DeliveryFee.StringFixed(2),
		IsOpen:       r.IsOpen,
	}
}

type menuItemResponse struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Category     string `json:"category"`
}

func toMenuItem(mi domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           mi.ID,
		RestaurantID: mi.RestaurantID,
		Name:         mi.Name,
		Description:  mi.Description,
		Price:        mi.Price.StringFixed(2),
		Category:     mi.Category,
	}
}

func toMenuItems(items []domain.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, mi := range items {
		out = append(out, toMenuItem(mi))
	}
	return out
}

type cartLineResponse struct {
	MenuItem  menuItemResponse `json:"menu_item"`
	Quantity  int              `json:"quantity"`
	LineTotal string           `json:"line_total"`
}

type cartResponse struct {
	Restaurant  *restaurantResponse `json:"restaurant"`
	Items       []cartLineResponse  `json:"items"`
	Subtotal    string              `json:"subtotal"`
	DeliveryFee string              `json:"delivery_fee"`
	Total       string              `json:"total"`
	Messages    []domain.Flash      `json:"messages"`
}

func toCart(v *service.CartView, messages []domain.Flash) cartResponse {
	out := cartResponse{
		Items:       make([]cartLineResponse, 0, len(v.Lines)),
		Subtotal:    v.Subtotal.StringFixed(2),
		DeliveryFee: v.DeliveryFee.StringFixed(2),
		Total:       v.Total.StringFixed(2),
		Messages:    messages,
	}
	if v.Restaurant != nil {
		r := toRestaurant(*v.Restaurant)
		out.Restaurant = &r
	}
	for _, l := range v.Lines {
		out.Items = append(out.Items, cartLineResponse{
			MenuItem:  toMenuItem(l.MenuItem),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.StringFixed(2),
		})
	}
	return out
}

type orderItemResponse struct {
	MenuItemID int64  `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
	LineTotal  string `json:"line_total"`
}

type paymentResponse struct {
	Method        string `json:"method"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type orderResponse struct {
	ID              int64               `json:"id"`
	CustomerID      int64               `json:"customer_id"`
	RestaurantID    int64               `json:"restaurant_id"`
	DeliveryAddress string              `json:"delivery_address"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"total_amount"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []orderItemResponse `json:"items,omitempty"`
	Payment         *paymentResponse    `json:"payment,omitempty"`
}

func toOrder(o domain.Order) orderResponse {
	out := orderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		RestaurantID:    o.RestaurantID,
		DeliveryAddress: o.DeliveryAddress,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount.StringFixed(2),
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemResponse{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price.StringFixed(2),
			LineTotal:  it.LineTotal().StringFixed(2),
		})
	}
	return out
}

func toOrders(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}

func toOrderDetail(d *service.OrderDetail) orderResponse {
	out := toOrder(d.Order)
	if d.Payment != nil {
		out.Payment = &paymentResponse{
			Method:        string(d.Payment.Method),
			Amount:        d.Payment.Amount.StringFixed(2),
			Status:        string(d.Payment.Status),
			TransactionID: d.Payment.TransactionID,
		}
	}
	return out
}
