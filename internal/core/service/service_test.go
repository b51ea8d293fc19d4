package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/food-order/internal/adapter/storage/memory"
	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store      *memory.Store
	events     *EventDispatcher
	restaurant domain.Restaurant
	margherita domain.MenuItem
	garlic     domain.MenuItem
	customer   domain.Customer
	vendor     domain.Vendor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{store: s, events: NewEventDispatcher(64, discardLogger())}
	f.vendor = s.AddVendor(domain.Vendor{UserID: 100, IsActive: true})
	f.customer = s.AddCustomer(domain.Customer{UserID: 200, Phone: "555-0100", Address: "1 Main St"})
	f.restaurant = s.AddRestaurant(domain.Restaurant{
		VendorID: f.vendor.ID, Name: "Pizza Palace", Slug: "pizza-palace",
		DeliveryFee: decimal.RequireFromString("2.90"), IsOpen: true,
	})
	f.margherita = s.AddMenuItem(domain.MenuItem{RestaurantID: f.restaurant.ID, Name: "Margherita", Price: decimal.RequireFromString("12.90"), IsAvailable: true})
	f.garlic = s.AddMenuItem(domain.MenuItem{RestaurantID: f.restaurant.ID, Name: "Garlic Bread", Price: decimal.RequireFromString("8.50"), IsAvailable: true})
	return f
}

func (f *fixture) fill(t *testing.T, sess domain.Session, ids ...int64) {
	t.Helper()
	carts := NewCartService(f.store, f.store)
	for _, id := range ids {
		require.NoError(t, carts.AddItem(context.Background(), sess, id))
	}
}

func (f *fixture) placeOrder(t *testing.T) *domain.Order {
	t.Helper()
	sess := domain.Session{ID: "order-" + t.Name()}
	f.fill(t, sess, f.margherita.ID, f.margherita.ID, f.garlic.ID)
	order, err := NewOrderService(f.store, f.store, f.events, discardLogger(), "").Checkout(context.Background(), sess, f.customer)
	require.NoError(t, err)
	return order
}

func (f *fixture) order(t *testing.T, id int64) *domain.Order {
	t.Helper()
	o, err := f.store.GetOrder(context.Background(), id, domain.OrderScope{})
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

// drain returns the events emitted so far.
func (f *fixture) drain() []domain.OrderEvent {
	var out []domain.OrderEvent
	for {
		select {
		case e := <-f.events.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

// failingRepo makes CreateOrderItem fail inside the transaction.
type failingRepo struct {
	port.OrderRepository
	err error
}

func (r failingRepo) RunInTx(ctx context.Context, fn func(ctx context.Context, tx port.OrderTx) error) error {
	return r.OrderRepository.RunInTx(ctx, func(ctx context.Context, tx port.OrderTx) error {
		return fn(ctx, failingTx{OrderTx: tx, err: r.err})
	})
}

type failingTx struct {
	port.OrderTx
	err error
}

func (t failingTx) CreateOrderItem(context.Context, *domain.OrderItem) error {
	return t.err
}

var errBoom = errors.New("boom")
