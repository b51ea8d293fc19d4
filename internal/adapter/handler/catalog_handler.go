package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rl1809/food-order/internal/core/domain"
)

func (h *HTTPHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RestaurantFilter{
		Query:    q.Get("q"),
		OpenOnly: q.Get("open") == "1" || q.Get("open") == "true",
	}
	restaurants, err := h.svc.Catalog.ListRestaurants(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, "list restaurants failed", err)
		return
	}

	out := make([]restaurantResponse, 0, len(restaurants))
	for _, rest := range restaurants {
		out = append(out, toRestaurant(rest))
	}
	writeJSON(w, http.StatusOK, map[string]any{"restaurants": out})
}

func (h *HTTPHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.svc.Catalog.GetRestaurant(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurant(*rest))
}

func (h *HTTPHandler) RestaurantMenu(w http.ResponseWriter, r *http.Request) {
	rest, items, err := h.svc.Catalog.RestaurantMenu(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"restaurant": toRestaurant(*rest),
		"items":      toMenuItems(items),
	})
}

// SearchMenu ignores price bounds that do not parse.
func (h *HTTPHandler) SearchMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MenuFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		PriceMin: parsePrice(q.Get("price_min")),
		PriceMax: parsePrice(q.Get("price_max")),
	}
	items, err := h.svc.Catalog.SearchMenu(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, "search menu failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toMenuItems(items)})
}

func (h *HTTPHandler) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	h.internalError(w, r, "catalog lookup failed", err)
}

func parsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}
