// Package memory keeps every storage port in process memory. Transactions are serialized
// and applied to a copy of the data, so a failed transaction leaves nothing behind.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

type state struct {
	seq         int64
	users       map[int64]domain.User
	customers   map[int64]domain.Customer
	vendors     map[int64]domain.Vendor
	restaurants map[int64]domain.Restaurant
	menuItems   map[int64]domain.MenuItem
	orders      map[int64]domain.Order
	orderItems  map[int64][]domain.OrderItem
	payments    map[int64]domain.Payment
}

func newState() *state {
	return &state{
		users:       map[int64]domain.User{},
		customers:   map[int64]domain.Customer{},
		vendors:     map[int64]domain.Vendor{},
		restaurants: map[int64]domain.Restaurant{},
		menuItems:   map[int64]domain.MenuItem{},
		orders:      map[int64]domain.Order{},
		orderItems:  map[int64][]domain.OrderItem{},
		payments:    map[int64]domain.Payment{},
	}
}

func (s *state) clone() *state {
	c := newState()
	c.seq = s.seq
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.vendors {
		c.vendors[k] = v
	}
	for k, v := range s.restaurants {
		c.restaurants[k] = v
	}
	for k, v := range s.menuItems {
		c.menuItems[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = append([]domain.OrderItem(nil), v...)
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

type Store struct {
	txMu sync.Mutex // serializes writers
	mu   sync.RWMutex
	data *state

	sessMu  sync.Mutex
	carts   map[string]domain.Cart
	flashes map[string][]domain.Flash
	guards  map[string]string
}

var (
	_ port.CatalogRepository = (*Store)(nil)
	_ port.OrderRepository   = (*Store)(nil)
	_ port.AccountRepository = (*Store)(nil)
	_ port.SessionStore      = (*Store)(nil)
	_ port.FlashStore        = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		data:    newState(),
		carts:   map[string]domain.Cart{},
		flashes: map[string][]domain.Flash{},
		guards:  map[string]string{},
	}
}

// write runs fn against the live data under the writer lock.
func (s *Store) write(fn func(st *state)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Seeding helpers. Zero ids are assigned.

func (s *Store) AddUser(u domain.User) domain.User {
	s.write(func(st *state) {
		if u.ID == 0 {
			u.ID = st.nextID()
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
		st.users[u.ID] = u
	})
	return u
}

func (s *Store) AddCustomer(c domain.Customer) domain.Customer {
	s.write(func(st *state) {
		if c.ID == 0 {
			c.ID = st.nextID()
		}
		st.customers[c.ID] = c
	})
	return c
}

func (s *Store) AddVendor(v domain.Vendor) domain.Vendor {
	s.write(func(st *state) {
		if v.ID == 0 {
			v.ID = st.nextID()
		}
		st.vendors[v.ID] = v
	})
	return v
}

func (s *Store) AddRestaurant(r domain.Restaurant) domain.Restaurant {
	s.write(func(st *state) {
		if r.ID == 0 {
			r.ID = st.nextID()
		}
		st.restaurants[r.ID] = r
	})
	return r
}

func (s *Store) AddMenuItem(mi domain.MenuItem) domain.MenuItem {
	s.write(func(st *state) {
		if mi.ID == 0 {
			mi.ID = st.nextID()
		}
		st.menuItems[mi.ID] = mi
	})
	return mi
}

func (s *Store) UpdateMenuItem(mi domain.MenuItem) {
	s.write(func(st *state) { st.menuItems[mi.ID] = mi })
}

func (s *Store) DeleteMenuItem(id int64) {
	s.write(func(st *state) { delete(st.menuItems, id) })
}

// Catalog

func (s *Store) GetRestaurant(_ context.Context, id int64) (*domain.Restaurant, error) {
	var out *domain.Restaurant
	s.read(func(st *state) { out = lookup(st.restaurants, id) })
	return out, nil
}

func (s *Store) GetRestaurantBySlug(_ context.Context, slug string) (*domain.Restaurant, error) {
	var out *domain.Restaurant
	s.read(func(st *state) {
		for _, r := range st.restaurants {
			if r.Slug == slug {
				r := r
				out = &r
				return
			}
		}
	})
	return out, nil
}

func (s *Store) ListRestaurants(_ context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	var out []domain.Restaurant
	s.read(func(st *state) {
		for _, r := range st.restaurants {
			if filter.OpenOnly && !r.IsOpen {
				continue
			}
			if q != "" && !restaurantMatches(st, r, q) {
				continue
			}
			out = append(out, r)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Rating.Cmp(out[j].Rating); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func restaurantMatches(st *state, r domain.Restaurant, q string) bool {
	if contains(r.Name, q) || contains(r.Description, q) {
		return true
	}
	for _, mi := range st.menuItems {
		if mi.RestaurantID == r.ID && (contains(mi.Name, q) || contains(mi.Description, q) || contains(mi.Category, q)) {
			return true
		}
	}
	return false
}

func (s *Store) GetMenuItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	var out *domain.MenuItem
	s.read(func(st *state) { out = lookup(st.menuItems, id) })
	return out, nil
}

func (s *Store) GetMenuItems(_ context.Context, ids []int64) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	s.read(func(st *state) { out = menuItemsByID(st, ids) })
	return out, nil
}

func (s *Store) ListMenuItems(_ context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	type row struct {
		item       domain.MenuItem
		restaurant string
	}
	var rows []row
	s.read(func(st *state) {
		for _, mi := range st.menuItems {
			r := st.restaurants[mi.RestaurantID]
			switch {
			case !mi.IsAvailable:
			case filter.RestaurantID != 0 && mi.RestaurantID != filter.RestaurantID:
			case filter.Category != "" && mi.Category != filter.Category:
			case filter.PriceMin != nil && mi.Price.LessThan(*filter.PriceMin):
			case filter.PriceMax != nil && mi.Price.GreaterThan(*filter.PriceMax):
			case q != "" && !contains(mi.Name, q) && !contains(mi.Description, q) && !contains(r.Name, q):
			default:
				rows = append(rows, row{item: mi, restaurant: r.Name})
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.restaurant != b.restaurant {
			return a.restaurant < b.restaurant
		}
		if a.item.Category != b.item.Category {
			return a.item.Category < b.item.Category
		}
		return a.item.Name < b.item.Name
	})
	out := make([]domain.MenuItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.item)
	}
	return out, nil
}

// Accounts

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	var out *domain.User
	s.read(func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (s *Store) GetVendorByUserID(_ context.Context, userID int64) (*domain.Vendor, error) {
	var out *domain.Vendor
	s.read(func(st *state) {
		for _, v := range st.vendors {
			if v.UserID == userID {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (s *Store) GetCustomer(_ context.Context, id int64) (*domain.Customer, error) {
	var out *domain.Customer
	s.read(func(st *state) { out = lookup(st.customers, id) })
	return out, nil
}

func (s *Store) GetOrCreateCustomer(_ context.Context, userID int64) (*domain.Customer, error) {
	var out domain.Customer
	s.write(func(st *state) {
		for _, c := range st.customers {
			if c.UserID == userID {
				out = c
				return
			}
		}
		out = domain.Customer{ID: st.nextID(), UserID: userID}
		st.customers[out.ID] = out
	})
	return &out, nil
}

// Orders

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx port.OrderTx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

func (s *Store) GetOrder(_ context.Context, orderID int64, scope domain.OrderScope) (*domain.Order, error) {
	var out *domain.Order
	s.read(func(st *state) {
		out = scopedOrder(st, orderID, scope)
		if out != nil {
			out.Items = append([]domain.OrderItem(nil), st.orderItems[orderID]...)
		}
	})
	return out, nil
}

func (s *Store) ListOrders(_ context.Context, scope domain.OrderScope) ([]domain.Order, error) {
	var out []domain.Order
	s.read(func(st *state) {
		for id := range st.orders {
			if o := scopedOrder(st, id, scope); o != nil {
				out = append(out, *o)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetPayment(_ context.Context, orderID int64) (*domain.Payment, error) {
	var out *domain.Payment
	s.read(func(st *state) { out = lookup(st.payments, orderID) })
	return out, nil
}

type memTx struct {
	st *state
}

func (t *memTx) GetRestaurant(_ context.Context, id int64) (*domain.Restaurant, error) {
	return lookup(t.st.restaurants, id), nil
}

func (t *memTx) GetMenuItems(_ context.Context, ids []int64) ([]domain.MenuItem, error) {
	return menuItemsByID(t.st, ids), nil
}

func (t *memTx) CreateOrder(_ context.Context, order *domain.Order) error {
	order.ID = t.st.nextID()
	stored := *order
	stored.Items = nil
	t.st.orders[order.ID] = stored
	return nil
}

func (t *memTx) CreateOrderItem(_ context.Context, item *domain.OrderItem) error {
	if _, ok := t.st.orders[item.OrderID]; !ok {
		return domain.ErrNotFound
	}
	item.ID = t.st.nextID()
	t.st.orderItems[item.OrderID] = append(t.st.orderItems[item.OrderID], *item)
	return nil
}

func (t *memTx) ListOrderItems(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	return append([]domain.OrderItem(nil), t.st.orderItems[orderID]...), nil
}

func (t *memTx) UpdateOrderTotal(_ context.Context, orderID int64, total decimal.Decimal) error {
	o, ok := t.st.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.TotalAmount = total
	o.UpdatedAt = time.Now().UTC()
	t.st.orders[orderID] = o
	return nil
}

func (t *memTx) LockOrder(_ context.Context, orderID int64, scope domain.OrderScope) (*domain.Order, error) {
	return scopedOrder(t.st, orderID, scope), nil
}

func (t *memTx) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) error {
	o, ok := t.st.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	t.st.orders[orderID] = o
	return nil
}

func (t *memTx) SetGatewayOrderID(_ context.Context, orderID int64, gatewayOrderID string) error {
	o, ok := t.st.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range t.st.orders {
		if id != orderID && gatewayOrderID != "" && other.GatewayOrderID == gatewayOrderID {
			return fmt.Errorf("gateway order %s already bound to order %d", gatewayOrderID, id)
		}
	}
	o.GatewayOrderID = gatewayOrderID
	o.UpdatedAt = time.Now().UTC()
	t.st.orders[orderID] = o
	return nil
}

func (t *memTx) UpsertPayment(_ context.Context, p *domain.Payment) error {
	now := time.Now().UTC()
	existing, ok := t.st.payments[p.OrderID]
	if ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = t.st.nextID()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	t.st.payments[p.OrderID] = *p
	return nil
}

// Sessions

func (s *Store) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()

	stored, ok := s.carts[sessionID]
	if !ok {
		cart := domain.NewCart()
		return &cart, nil
	}
	cart := copyCart(stored)
	return &cart, nil
}

func (s *Store) SaveCart(_ context.Context, sessionID string, cart domain.Cart) error {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	s.carts[sessionID] = copyCart(cart)
	return nil
}

func (s *Store) ClearCart(_ context.Context, sessionID string) error {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *Store) AcquireCheckout(_ context.Context, sessionID string) (string, bool, error) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	if _, held := s.guards[sessionID]; held {
		return "", false, nil
	}
	token := uuid.NewString()
	s.guards[sessionID] = token
	return token, true, nil
}

func (s *Store) ReleaseCheckout(_ context.Context, sessionID, token string) error {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	if s.guards[sessionID] == token {
		delete(s.guards, sessionID)
	}
	return nil
}

func (s *Store) AddFlash(_ context.Context, sessionID string, flash domain.Flash) error {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	s.flashes[sessionID] = append(s.flashes[sessionID], flash)
	return nil
}

func (s *Store) PopFlashes(_ context.Context, sessionID string) ([]domain.Flash, error) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	out := s.flashes[sessionID]
	delete(s.flashes, sessionID)
	if out == nil {
		out = []domain.Flash{}
	}
	return out, nil
}

func scopedOrder(st *state, orderID int64, scope domain.OrderScope) *domain.Order {
	o, ok := st.orders[orderID]
	if !ok {
		return nil
	}
	if !scope.Allows(o, st.restaurants[o.RestaurantID].VendorID) {
		return nil
	}
	return &o
}

func menuItemsByID(st *state, ids []int64) []domain.MenuItem {
	var out []domain.MenuItem
	for _, id := range ids {
		if mi, ok := st.menuItems[id]; ok {
			out = append(out, mi)
		}
	}
	return out
}

func lookup[T any](m map[int64]T, id int64) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

func copyCart(c domain.Cart) domain.Cart {
	out := domain.NewCart()
	if c.RestaurantID != nil {
		rid := *c.RestaurantID
		out.RestaurantID = &rid
	}
	for k, v := range c.Items {
		out.Items[k] = v
	}
	return out
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
