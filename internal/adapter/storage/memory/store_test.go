package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

func TestRunInTx_RollbackOnError(t *testing.T) {
	s := NewStore()
	r := s.AddRestaurant(domain.Restaurant{Name: "R", Slug: "r", IsOpen: true})
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		order := &domain.Order{RestaurantID: r.ID, Status: domain.OrderStatusPending}
		require.NoError(t, tx.CreateOrder(ctx, order))
		require.NoError(t, tx.CreateOrderItem(ctx, &domain.OrderItem{OrderID: order.ID, MenuItemID: 1, Quantity: 1, Price: decimal.NewFromInt(5)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	orders, err := s.ListOrders(ctx, domain.OrderScope{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRunInTx_Commit(t *testing.T) {
	s := NewStore()
	r := s.AddRestaurant(domain.Restaurant{VendorID: 9, Name: "R", Slug: "r", IsOpen: true})
	ctx := context.Background()

	var id int64
	err := s.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		order := &domain.Order{CustomerID: 4, RestaurantID: r.ID, Status: domain.OrderStatusPending}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		id = order.ID
		return tx.CreateOrderItem(ctx, &domain.OrderItem{OrderID: order.ID, MenuItemID: 1, Quantity: 2, Price: decimal.NewFromInt(5)})
	})
	require.NoError(t, err)

	got, err := s.GetOrder(ctx, id, domain.OrderScope{CustomerID: 4})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Items, 1)

	other, err := s.GetOrder(ctx, id, domain.OrderScope{CustomerID: 5})
	require.NoError(t, err)
	assert.Nil(t, other)

	byVendor, err := s.ListOrders(ctx, domain.OrderScope{VendorID: 9})
	require.NoError(t, err)
	assert.Len(t, byVendor, 1)

	otherVendor, err := s.ListOrders(ctx, domain.OrderScope{VendorID: 8})
	require.NoError(t, err)
	assert.Empty(t, otherVendor)
}

func TestUpsertPayment_SingleRow(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, status := range []domain.PaymentStatus{domain.PaymentStatusPending, domain.PaymentStatusSuccess} {
		err := s.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
			return tx.UpsertPayment(ctx, &domain.Payment{OrderID: 1, Method: domain.PaymentMethodCard, Status: status})
		})
		require.NoError(t, err)
	}

	p, err := s.GetPayment(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
}

func TestSetGatewayOrderID_Unique(t *testing.T) {
	s := NewStore()
	r := s.AddRestaurant(domain.Restaurant{Name: "R", Slug: "r", IsOpen: true})
	ctx := context.Background()

	var first, second int64
	err := s.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		a := &domain.Order{RestaurantID: r.ID, Status: domain.OrderStatusPending}
		b := &domain.Order{RestaurantID: r.ID, Status: domain.OrderStatusPending}
		require.NoError(t, tx.CreateOrder(ctx, a))
		require.NoError(t, tx.CreateOrder(ctx, b))
		first, second = a.ID, b.ID
		return tx.SetGatewayOrderID(ctx, a.ID, "rp_1")
	})
	require.NoError(t, err)

	err = s.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		return tx.SetGatewayOrderID(ctx, second, "rp_1")
	})
	assert.Error(t, err)

	got, err := s.GetOrder(ctx, first, domain.OrderScope{})
	require.NoError(t, err)
	assert.Equal(t, "rp_1", got.GatewayOrderID)
	got, err = s.GetOrder(ctx, second, domain.OrderScope{})
	require.NoError(t, err)
	assert.Empty(t, got.GatewayOrderID)
}

func TestCart_IsCopied(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	cart, err := s.GetCart(ctx, "s")
	require.NoError(t, err)
	cart.Add(domain.MenuItem{ID: 1, RestaurantID: 1})

	stored, err := s.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())

	require.NoError(t, s.SaveCart(ctx, "s", *cart))
	stored, err = s.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity(1))
}

func TestListMenuItems_Filters(t *testing.T) {
	s := NewStore()
	require.NoError(t, Seed(s))
	ctx := context.Background()

	max := decimal.RequireFromString("9.00")
	items, err := s.ListMenuItems(ctx, domain.MenuFilter{PriceMax: &max})
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, mi := range items {
		names = append(names, mi.Name)
	}
	assert.Equal(t, []string{"Tiramisu", "Garlic Bread", "Miso Soup"}, names)

	restaurants, err := s.ListRestaurants(ctx, domain.RestaurantFilter{Query: "maki"})
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "sushi-corner", restaurants[0].Slug)
}
