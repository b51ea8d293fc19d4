package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rl1809/food-order/internal/core/domain"
)

func (h *HTTPHandler) VendorOrders(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	orders, err := h.svc.Fulfillment.ListOrders(r.Context(), p.ProfileID)
	if err != nil {
		h.internalError(w, r, "list vendor orders failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":   toOrders(orders),
		"messages": h.messages(r),
	})
}

// VendorAction always redirects back to the order list; the outcome travels as a flash.
func (h *HTTPHandler) VendorAction(w http.ResponseWriter, r *http.Request) {
	defer redirect(w, r, "/vendor/orders")

	orderID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("order_id")), 10, 64)
	if err != nil || orderID <= 0 {
		h.flash(r, domain.FlashError, "Invalid order.")
		return
	}
	action := domain.VendorAction(strings.TrimSpace(r.FormValue("action")))

	p := principalFrom(r.Context())
	order, err := h.svc.Fulfillment.ApplyAction(r.Context(), p.ProfileID, orderID, action)
	switch {
	case err == nil:
		h.flash(r, domain.FlashSuccess, fmt.Sprintf("Order #%d is now %s.", order.ID, order.Status))
	case errors.Is(err, domain.ErrNotFound):
		h.flash(r, domain.FlashError, "Order not found.")
	case errors.Is(err, domain.ErrValidation):
		h.flash(r, domain.FlashError, "Unknown action.")
	case errors.Is(err, domain.ErrInvalidTransition):
		h.flash(r, domain.FlashError, fmt.Sprintf("Order #%d cannot be moved that way.", orderID))
	default:
		h.logRequestError(r, "vendor action failed", err)
		h.flash(r, domain.FlashError, "Could not update the order.")
	}
}
