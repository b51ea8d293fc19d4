package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/core/service"
)

func (h *HTTPHandler) customer(w http.ResponseWriter, r *http.Request) (*domain.Customer, bool) {
	c, err := h.svc.Auth.Customer(r.Context(), principalFrom(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusForbidden, "customer profile not found")
			return nil, false
		}
		h.internalError(w, r, "load customer failed", err)
		return nil, false
	}
	return c, true
}

// Checkout redirects to the new order, or back with a warning when the cart cannot be
// ordered.
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.customer(w, r)
	if !ok {
		return
	}

	order, err := h.svc.Orders.Checkout(r.Context(), sessionFrom(r.Context()), *customer)
	switch {
	case err == nil:
		h.flash(r, domain.FlashSuccess, fmt.Sprintf("Order #%d placed.", order.ID))
		redirect(w, r, fmt.Sprintf("/orders/%d", order.ID))
	case errors.Is(err, domain.ErrEmptyCart):
		h.flash(r, domain.FlashWarning, "Your cart is empty.")
		redirect(w, r, "/cart")
	case errors.Is(err, domain.ErrMissingPhone):
		h.flash(r, domain.FlashWarning, "Please add a phone number to your profile before checking out.")
		redirect(w, r, "/accounts/profile")
	case errors.Is(err, domain.ErrRestaurantClosed):
		h.flash(r, domain.FlashWarning, "This restaurant is not accepting orders right now.")
		redirect(w, r, "/cart")
	case errors.Is(err, domain.ErrCheckoutInProgress):
		h.flash(r, domain.FlashInfo, "Your order is already being placed.")
		redirect(w, r, "/cart")
	case errors.Is(err, domain.ErrNotFound):
		h.flash(r, domain.FlashError, "The restaurant for this cart no longer exists.")
		redirect(w, r, "/cart")
	default:
		h.internalError(w, r, "checkout failed", err)
	}
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.customer(w, r)
	if !ok {
		return
	}
	orders, err := h.svc.Orders.ListOrders(r.Context(), customer.ID)
	if err != nil {
		h.internalError(w, r, "list orders failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":   toOrders(orders),
		"messages": h.messages(r),
	})
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderID")
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	customer, ok := h.customer(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.Orders.GetOrder(r.Context(), customer.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, "get order failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order":    toOrderDetail(detail),
		"messages": h.messages(r),
	})
}

func (h *HTTPHandler) ConfirmCOD(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderID")
	if !ok {
		h.flash(r, domain.FlashError, "Order not found.")
		redirect(w, r, "/orders")
		return
	}
	customer, ok := h.customer(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Payments.ConfirmCOD(r.Context(), customer.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flash(r, domain.FlashError, "Order not found.")
			redirect(w, r, "/orders")
			return
		}
		h.internalError(w, r, "confirm cod failed", err)
		return
	}
	h.flash(r, domain.FlashSuccess, "Cash on delivery selected. Your order has been confirmed.")
	redirect(w, r, fmt.Sprintf("/orders/%d", id))
}

type cardCheckoutResponse struct {
	KeyID         string `json:"key_id"`
	RPOrderID     string `json:"rp_order_id"`
	Amount        int64  `json:"amount"`
	DisplayAmount string `json:"display_amount"`
	Currency      string `json:"currency"`
	OrderID       int64  `json:"order_id"`
}

func (h *HTTPHandler) StartCardPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderID")
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	customer, ok := h.customer(w, r)
	if !ok {
		return
	}

	co, err := h.svc.Payments.StartCardPayment(r.Context(), customer.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("card checkout failed",
			slog.Int64("order_id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error_message": "payment gateway unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, cardCheckoutResponse{
		KeyID:         co.KeyID,
		RPOrderID:     co.GatewayOrderID,
		Amount:        co.AmountMinor,
		DisplayAmount: co.Amount.StringFixed(2),
		Currency:      co.Currency,
		OrderID:       co.OrderID,
	})
}

// VerifyPayment answers the processor callback. Failures are reported in the body, never as
// redirects.
func (h *HTTPHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failed", "error": "invalid form"})
		return
	}

	orderID, _ := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("app_order_id")), 10, 64)
	in := service.VerifyPaymentInput{
		GatewayOrderID: r.PostFormValue("razorpay_order_id"),
		PaymentID:      r.PostFormValue("razorpay_payment_id"),
		Signature:      r.PostFormValue("razorpay_signature"),
		OrderID:        orderID,
	}

	payment, err := h.svc.Payments.VerifyPayment(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "payment_id": payment.TransactionID})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failed", "error": "missing parameters"})
	case errors.Is(err, domain.ErrSignature):
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "failed"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "failed", "error": "order not found"})
	default:
		h.logger.Error("payment verification failed",
			slog.Int64("order_id", in.OrderID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "failed"})
	}
}
