package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rl1809/food-order/internal/adapter/gateway"
	"github.com/rl1809/food-order/internal/adapter/gateway/gatewaytest"
	"github.com/rl1809/food-order/internal/adapter/storage/memory"
	"github.com/rl1809/food-order/internal/adapter/token"
	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/core/service"
)

const gatewaySecret = "rzp_secret"

type testApp struct {
	t          *testing.T
	store      *memory.Store
	tokens     *token.JWTIssuer
	svc        Services
	server     *httptest.Server
	restaurant domain.Restaurant
	margherita domain.MenuItem
	garlic     domain.MenuItem
	customer   domain.Customer
	noPhone    domain.Customer
	vendor     domain.Vendor
	other      domain.Vendor
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()

	hash, err := bcrypt.GenerateFromPassword([]byte("pizza"), bcrypt.MinCost)
	require.NoError(t, err)
	customerUser := store.AddUser(domain.User{Username: "alice", PasswordHash: string(hash)})
	vendorUser := store.AddUser(domain.User{Username: "bob", PasswordHash: string(hash)})

	app := &testApp{t: t, store: store}
	app.customer = store.AddCustomer(domain.Customer{UserID: customerUser.ID, Phone: "+91 98765 43210", Address: "MG Road 1"})
	app.noPhone = store.AddCustomer(domain.Customer{UserID: 999})
	app.vendor = store.AddVendor(domain.Vendor{UserID: vendorUser.ID, IsActive: true})
	app.other = store.AddVendor(domain.Vendor{UserID: 998, IsActive: true})
	app.restaurant = store.AddRestaurant(domain.Restaurant{
		VendorID: app.vendor.ID, Name: "Pizza Palace", Slug: "pizza-palace",
		Rating: decimal.RequireFromString("4.5"), DeliveryFee: decimal.RequireFromString("2.90"), IsOpen: true,
	})
	app.margherita = store.AddMenuItem(domain.MenuItem{RestaurantID: app.restaurant.ID, Name: "Margherita", Category: "pizza", Price: decimal.RequireFromString("12.90"), IsAvailable: true})
	app.garlic = store.AddMenuItem(domain.MenuItem{RestaurantID: app.restaurant.ID, Name: "Garlic Bread", Category: "side", Price: decimal.RequireFromString("8.50"), IsAvailable: true})

	rp := gatewaytest.NewServer()
	t.Cleanup(rp.Close)

	events := service.NewEventDispatcher(256, logger)
	app.tokens = token.NewJWTIssuer("test-secret", time.Hour)
	app.svc = Services{
		Auth:        service.NewAuthService(store, app.tokens),
		Catalog:     service.NewCatalogService(store),
		Cart:        service.NewCartService(store, store),
		Orders:      service.NewOrderService(store, store, events, logger, ""),
		Payments:    service.NewPaymentService(store, gateway.NewRazorpayClient("rzp_key", gatewaySecret, rp.URL), events, logger, ""),
		Fulfillment: service.NewFulfillmentService(store, events, logger, false),
		Flashes:     store,
	}
	app.server = httptest.NewServer(NewHTTPHandler(app.svc, logger, false).Routes())
	t.Cleanup(app.server.Close)
	return app
}

type client struct {
	t     *testing.T
	base  string
	http  *http.Client
	token string
}

func (a *testApp) client(p domain.Principal) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)
	c := &client{
		t:    a.t,
		base: a.server.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	if p.Authenticated() {
		c.token, err = a.tokens.Issue(p)
		require.NoError(a.t, err)
	}
	return c
}

func (a *testApp) customerClient() *client {
	return a.client(domain.Principal{UserID: a.customer.UserID, Role: domain.RoleCustomer, ProfileID: a.customer.ID})
}

func (a *testApp) vendorClient(v domain.Vendor) *client {
	return a.client(domain.Principal{UserID: v.UserID, Role: domain.RoleVendor, ProfileID: v.ID})
}

func (c *client) do(method, path string, form url.Values) *http.Response {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (c *client) json(method, path string, form url.Values, out any) *http.Response {
	c.t.Helper()
	resp := c.do(method, path, form)
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func (a *testApp) placeOrder(c *client) int64 {
	a.t.Helper()
	for _, id := range []int64{a.margherita.ID, a.margherita.ID, a.garlic.ID} {
		resp := c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", id), nil)
		require.Equal(a.t, http.StatusSeeOther, resp.StatusCode)
	}
	resp := c.do(http.MethodPost, "/checkout", nil)
	require.Equal(a.t, http.StatusSeeOther, resp.StatusCode)

	var id int64
	_, err := fmt.Sscanf(resp.Header.Get("Location"), "/orders/%d", &id)
	require.NoError(a.t, err)
	return id
}

func (a *testApp) orderStatus(id int64) domain.OrderStatus {
	a.t.Helper()
	o, err := a.store.GetOrder(context.Background(), id, domain.OrderScope{})
	require.NoError(a.t, err)
	require.NotNil(a.t, o)
	return o.Status
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	var body map[string]string
	resp := app.client(domain.Principal{}).json(http.MethodGet, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	c := app.client(domain.Principal{})

	var body map[string]string
	resp := c.json(http.MethodPost, "/auth/login", url.Values{"username": {"bob"}, "password": {"pizza"}}, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "vendor", body["role"])

	// the auth cookie alone authenticates follow-up requests
	resp = c.do(http.MethodGet, "/vendor/orders", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = c.do(http.MethodPost, "/auth/login", url.Values{"username": {"bob"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGuards(t *testing.T) {
	app := newTestApp(t)

	resp := app.client(domain.Principal{}).do(http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = app.vendorClient(app.vendor).do(http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = app.customerClient().do(http.MethodGet, "/vendor/orders", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCatalog(t *testing.T) {
	app := newTestApp(t)
	c := app.client(domain.Principal{})

	var menu struct {
		Restaurant restaurantResponse `json:"restaurant"`
		Items      []menuItemResponse `json:"items"`
	}
	resp := c.json(http.MethodGet, "/restaurants/pizza-palace/menu", nil, &menu)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.90", menu.Restaurant.DeliveryFee)
	assert.Len(t, menu.Items, 2)

	var search struct {
		Items []menuItemResponse `json:"items"`
	}
	c.json(http.MethodGet, "/menu?price_max=10&price_min=abc", nil, &search)
	require.Len(t, search.Items, 1)
	assert.Equal(t, "Garlic Bread", search.Items[0].Name)

	resp = c.do(http.MethodGet, "/restaurants/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCart_AddRemoveView(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()

	resp := c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", app.margherita.ID), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))
	c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", app.margherita.ID), nil)
	c.do(http.MethodPost, fmt.Sprintf("/cart/remove/%d", app.margherita.ID), nil)

	var cart cartResponse
	c.json(http.MethodGet, "/cart", nil, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, "12.90", cart.Subtotal)
	assert.Equal(t, "15.80", cart.Total)

	resp = c.do(http.MethodPost, "/cart/add/424242", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))

	cart = cartResponse{}
	c.json(http.MethodGet, "/cart", nil, &cart)
	assert.Len(t, cart.Items, 1)
	require.Len(t, cart.Messages, 1)
	assert.Equal(t, domain.FlashError, cart.Messages[0].Level)
}

func TestCheckout_Total(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()

	id := app.placeOrder(c)

	var detail struct {
		Order    orderResponse  `json:"order"`
		Messages []domain.Flash `json:"messages"`
	}
	resp := c.json(http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "37.20", detail.Order.TotalAmount)
	assert.Equal(t, "pending", detail.Order.Status)
	assert.Len(t, detail.Order.Items, 2)
	require.Len(t, detail.Messages, 1)
	assert.Equal(t, domain.FlashSuccess, detail.Messages[0].Level)

	var cart cartResponse
	c.json(http.MethodGet, "/cart", nil, &cart)
	assert.Empty(t, cart.Items)
}

func TestCheckout_EmptyCart(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()

	resp := c.do(http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))

	var cart cartResponse
	c.json(http.MethodGet, "/cart", nil, &cart)
	require.Len(t, cart.Messages, 1)
	assert.Equal(t, domain.FlashWarning, cart.Messages[0].Level)

	orders, err := app.store.ListOrders(context.Background(), domain.OrderScope{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_MissingPhone(t *testing.T) {
	app := newTestApp(t)
	c := app.client(domain.Principal{UserID: 999, Role: domain.RoleCustomer, ProfileID: app.noPhone.ID})

	c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", app.garlic.ID), nil)
	resp := c.do(http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/accounts/profile", resp.Header.Get("Location"))

	var cart cartResponse
	c.json(http.MethodGet, "/cart", nil, &cart)
	assert.Len(t, cart.Items, 1)
}

func TestConfirmCOD_Idempotent(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()
	id := app.placeOrder(c)

	for i := 0; i < 2; i++ {
		resp := c.do(http.MethodPost, fmt.Sprintf("/payments/cod/%d", id), nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, fmt.Sprintf("/orders/%d", id), resp.Header.Get("Location"))
	}

	var detail struct {
		Order orderResponse `json:"order"`
	}
	c.json(http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &detail)
	assert.Equal(t, "accepted", detail.Order.Status)
	require.NotNil(t, detail.Order.Payment)
	assert.Equal(t, "cash_on_delivery", detail.Order.Payment.Method)
	assert.Equal(t, "37.20", detail.Order.Payment.Amount)

	// someone else's order looks absent
	intruder := app.client(domain.Principal{UserID: 999, Role: domain.RoleCustomer, ProfileID: app.noPhone.ID})
	resp := intruder.do(http.MethodPost, fmt.Sprintf("/payments/cod/%d", id), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/orders", resp.Header.Get("Location"))

	var list struct {
		Messages []domain.Flash `json:"messages"`
	}
	intruder.json(http.MethodGet, "/orders", nil, &list)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, domain.FlashError, list.Messages[0].Level)
}

func TestStartCardPayment(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()
	id := app.placeOrder(c)

	var body cardCheckoutResponse
	resp := c.json(http.MethodPost, fmt.Sprintf("/payments/upi/%d", id), nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rzp_key", body.KeyID)
	assert.Equal(t, rpOrderID(id), body.RPOrderID)
	assert.Equal(t, int64(3720), body.Amount)
	assert.Equal(t, "37.20", body.DisplayAmount)
	assert.Equal(t, "INR", body.Currency)
}

// rpOrderID is the processor order the fake API opens for order id.
func rpOrderID(id int64) string {
	return gatewaytest.OrderID(fmt.Sprintf("order_%d", id))
}

func (a *testApp) startCard(c *client, id int64) {
	a.t.Helper()
	resp := c.do(http.MethodPost, fmt.Sprintf("/payments/upi/%d", id), nil)
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
}

func TestVerifyPayment(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()
	id := app.placeOrder(c)
	app.startCard(c, id)
	anon := app.client(domain.Principal{})

	form := url.Values{
		"razorpay_order_id":   {rpOrderID(id)},
		"razorpay_payment_id": {"pay_1"},
		"razorpay_signature":  {"deadbeef"},
		"app_order_id":        {fmt.Sprint(id)},
	}
	var body map[string]string
	resp := anon.json(http.MethodPost, "/payments/verify", form, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, domain.OrderStatusPending, app.orderStatus(id))

	form.Set("razorpay_signature", gatewaytest.Sign(gatewaySecret, rpOrderID(id), "pay_1"))
	body = nil
	resp = anon.json(http.MethodPost, "/payments/verify", form, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "pay_1", body["payment_id"])
	assert.Equal(t, domain.OrderStatusAccepted, app.orderStatus(id))

	p, err := app.store.GetPayment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
	assert.Equal(t, "pay_1", p.TransactionID)

	form.Del("razorpay_payment_id")
	resp = anon.do(http.MethodPost, "/payments/verify", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyPayment_SignatureForAnotherOrder(t *testing.T) {
	app := newTestApp(t)
	c := app.customerClient()
	paid := app.placeOrder(c)
	app.startCard(c, paid)
	target := app.placeOrder(c)
	anon := app.client(domain.Principal{})

	form := url.Values{
		"razorpay_order_id":   {rpOrderID(paid)},
		"razorpay_payment_id": {"pay_1"},
		"razorpay_signature":  {gatewaytest.Sign(gatewaySecret, rpOrderID(paid), "pay_1")},
		"app_order_id":        {fmt.Sprint(target)},
	}
	var body map[string]string
	resp := anon.json(http.MethodPost, "/payments/verify", form, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, domain.OrderStatusPending, app.orderStatus(target))

	p, err := app.store.GetPayment(context.Background(), target)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestVendorAction(t *testing.T) {
	app := newTestApp(t)
	id := app.placeOrder(app.customerClient())

	outsider := app.vendorClient(app.other)
	resp := outsider.do(http.MethodPost, "/vendor/orders/action", url.Values{"order_id": {fmt.Sprint(id)}, "action": {"delivered"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/vendor/orders", resp.Header.Get("Location"))
	assert.Equal(t, domain.OrderStatusPending, app.orderStatus(id))

	var list struct {
		Orders   []orderResponse `json:"orders"`
		Messages []domain.Flash  `json:"messages"`
	}
	outsider.json(http.MethodGet, "/vendor/orders", nil, &list)
	assert.Empty(t, list.Orders)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, domain.FlashError, list.Messages[0].Level)

	owner := app.vendorClient(app.vendor)
	owner.do(http.MethodPost, "/vendor/orders/action", url.Values{"order_id": {fmt.Sprint(id)}, "action": {"ready"}})
	assert.Equal(t, domain.OrderStatusOnTheWay, app.orderStatus(id))

	owner.do(http.MethodPost, "/vendor/orders/action", url.Values{"order_id": {fmt.Sprint(id)}, "action": {"teleport"}})
	list.Messages = nil
	owner.json(http.MethodGet, "/vendor/orders", nil, &list)
	require.Len(t, list.Orders, 1)
	require.Len(t, list.Messages, 2)
	assert.Equal(t, domain.FlashSuccess, list.Messages[0].Level)
	assert.Equal(t, domain.FlashError, list.Messages[1].Level)
}
