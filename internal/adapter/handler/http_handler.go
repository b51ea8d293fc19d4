package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/core/service"
	"github.com/rl1809/food-order/internal/port"
)

type Services struct {
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Cart        *service.CartService
	Orders      *service.OrderService
	Payments    *service.PaymentService
	Fulfillment *service.FulfillmentService
	Flashes     port.FlashStore
}

type HTTPHandler struct {
	svc          Services
	logger       *slog.Logger
	secureCookie bool
}

func NewHTTPHandler(svc Services, logger *slog.Logger, secureCookie bool) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: logger, secureCookie: secureCookie}
}

// Routes builds the router. Customer and vendor routes sit behind role checks; payment
// verification is open and relies on the processor signature.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(h.withSession)
	r.Use(h.withPrincipal)

	r.Get("/health", h.HealthCheck)
	r.Post("/auth/login", h.Login)

	r.Get("/restaurants", h.ListRestaurants)
	r.Get("/restaurants/{slug}", h.GetRestaurant)
	r.Get("/restaurants/{slug}/menu", h.RestaurantMenu)
	r.Get("/menu", h.SearchMenu)

	r.Post("/payments/verify", h.VerifyPayment)

	r.Group(func(r chi.Router) {
		r.Use(requireRole(domain.RoleCustomer))
		r.Get("/cart", h.ViewCart)
		r.Post("/cart/add/{menuItemID}", h.AddToCart)
		r.Post("/cart/remove/{menuItemID}", h.RemoveFromCart)
		r.Post("/checkout", h.Checkout)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{orderID}", h.GetOrder)
		r.Post("/payments/cod/{orderID}", h.ConfirmCOD)
		r.Post("/payments/upi/{orderID}", h.StartCardPayment)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireRole(domain.RoleVendor))
		r.Get("/vendor/orders", h.VendorOrders)
		r.Post("/vendor/orders/action", h.VendorAction)
	})

	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, principal, err := h.svc.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.internalError(w, r, "login failed", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "role": principal.Role.String()})
}

func (h *HTTPHandler) flash(r *http.Request, level domain.FlashLevel, msg string) {
	sess := sessionFrom(r.Context())
	if err := h.svc.Flashes.AddFlash(r.Context(), sess.ID, domain.Flash{Level: level, Message: msg}); err != nil {
		h.logger.Warn("failed to store flash message",
			slog.String("session_id", sess.ID), slog.String("error", err.Error()))
	}
}

func (h *HTTPHandler) messages(r *http.Request) []domain.Flash {
	sess := sessionFrom(r.Context())
	flashes, err := h.svc.Flashes.PopFlashes(r.Context(), sess.ID)
	if err != nil {
		h.logger.Warn("failed to load flash messages",
			slog.String("session_id", sess.ID), slog.String("error", err.Error()))
		return []domain.Flash{}
	}
	return flashes
}

// redirect sends a 303 so the browser follows up with GET.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logRequestError(r, msg, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *HTTPHandler) logRequestError(r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()))
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
