package handler

import (
	"errors"
	"net/http"

	"github.com/rl1809/food-order/internal/core/domain"
)

func (h *HTTPHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Cart.ViewCart(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.internalError(w, r, "view cart failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toCart(view, h.messages(r)))
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "menuItemID")
	if !ok {
		h.flash(r, domain.FlashError, "That menu item is not available.")
		redirect(w, r, "/cart")
		return
	}

	if err := h.svc.Cart.AddItem(r.Context(), sessionFrom(r.Context()), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flash(r, domain.FlashError, "That menu item is not available.")
			redirect(w, r, "/cart")
			return
		}
		h.internalError(w, r, "add to cart failed", err)
		return
	}
	redirect(w, r, "/cart")
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "menuItemID")
	if !ok {
		redirect(w, r, "/cart")
		return
	}

	if err := h.svc.Cart.RemoveItem(r.Context(), sessionFrom(r.Context()), id); err != nil {
		h.internalError(w, r, "remove from cart failed", err)
		return
	}
	redirect(w, r, "/cart")
}
