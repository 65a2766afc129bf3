package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarly/sellerconsole/internal/event"
	"github.com/bazaarly/sellerconsole/internal/session"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/httputil"
	"github.com/bazaarly/sellerconsole/pkg/middleware"
)

// ShopHandler handles HTTP requests for inventory and orders.
type ShopHandler struct {
	sessions *session.Manager
	events   *event.Producer
	logger   *slog.Logger
}

// NewShopHandler creates a shop HTTP handler.
func NewShopHandler(sessions *session.Manager, events *event.Producer, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{sessions: sessions, events: events, logger: logger}
}

func (h *ShopHandler) session(r *http.Request) *session.Session {
	return h.sessions.Get(middleware.SellerIDFromContext(r.Context()))
}

// Inventory handles GET /api/v1/inventory
func (h *ShopHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sess.Shop.Inventory()})
}

// ToggleStock handles POST /api/v1/inventory/{name}/toggle-stock
func (h *ShopHandler) ToggleStock(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		httputil.WriteError(w, r, apperr.InvalidInput("invalid product name"), h.logger)
		return
	}

	sess := h.session(r)
	items, err := sess.Shop.ToggleStock(name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	for _, item := range items {
		if item.ProductName == name {
			h.events.StockToggled(r.Context(), sess.SellerID, name, item.InStock)
			break
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// Summary handles GET /api/v1/inventory/summary
func (h *ShopHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sess.Shop.Summary()})
}

// Orders handles GET /api/v1/orders?product=
func (h *ShopHandler) Orders(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	product := r.URL.Query().Get("product")
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sess.Shop.FilterOrders(product)})
}

// Order handles GET /api/v1/orders/{id}
func (h *ShopHandler) Order(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	order, err := sess.Shop.Order(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// OpenOrder handles POST /api/v1/orders/{id}/open
func (h *ShopHandler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	detail, err := sess.Shop.OpenOrder(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// OpenedOrder handles GET /api/v1/orders/detail
func (h *ShopHandler) OpenedOrder(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	detail, err := sess.Shop.OpenedOrder()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// Back handles POST /api/v1/orders/back
func (h *ShopHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	sess.Shop.Back()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"view": "list"}})
}
