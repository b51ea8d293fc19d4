package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

type CartService struct {
	catalog  port.CatalogRepository
	sessions port.SessionStore
}

type CartLine struct {
	MenuItem  domain.MenuItem
	Quantity  int
	LineTotal decimal.Decimal
}

type CartView struct {
	Restaurant  *domain.Restaurant
	Lines       []CartLine
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

func NewCartService(catalog port.CatalogRepository, sessions port.SessionStore) *CartService {
	return &CartService{catalog: catalog, sessions: sessions}
}

func (s *CartService) AddItem(ctx context.Context, sess domain.Session, menuItemID int64) error {
	item, err := s.catalog.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return fmt.Errorf("get menu item: %w", err)
	}
	if item == nil || !item.IsAvailable {
		return fmt.Errorf("menu item %d: %w", menuItemID, domain.ErrNotFound)
	}

	cart, err := s.sessions.GetCart(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	cart.Add(*item)

	if err := s.sessions.SaveCart(ctx, sess.ID, *cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, sess domain.Session, menuItemID int64) error {
	cart, err := s.sessions.GetCart(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	if !cart.Remove(menuItemID) {
		return nil
	}

	if err := s.sessions.SaveCart(ctx, sess.ID, *cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// ViewCart prices the cart with current menu prices. Entries whose menu item no longer
// exists are left out.
func (s *CartService) ViewCart(ctx context.Context, sess domain.Session) (*CartView, error) {
	cart, err := s.sessions.GetCart(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	view := &CartView{
		Lines:       []CartLine{},
		Subtotal:    decimal.Zero,
		DeliveryFee: decimal.Zero,
	}
	if cart.IsEmpty() {
		view.Total = decimal.Zero
		return view, nil
	}

	items, err := s.catalog.GetMenuItems(ctx, cart.MenuItemIDs())
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}
	for _, mi := range items {
		qty := cart.Quantity(mi.ID)
		if qty <= 0 {
			continue
		}
		line := CartLine{MenuItem: mi, Quantity: qty, LineTotal: domain.LineTotal(mi.Price, qty)}
		view.Lines = append(view.Lines, line)
		view.Subtotal = view.Subtotal.Add(line.LineTotal)
	}

	if cart.RestaurantID != nil {
		restaurant, err := s.catalog.GetRestaurant(ctx, *cart.RestaurantID)
		if err != nil {
			return nil, fmt.Errorf("get restaurant: %w", err)
		}
		if restaurant != nil {
			view.Restaurant = restaurant
			view.DeliveryFee = restaurant.DeliveryFee
		}
	}

	view.Total = view.Subtotal.Add(view.DeliveryFee)
	return view, nil
}
