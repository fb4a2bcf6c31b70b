// Package handler serves the storefront checkout API: address lookups,
// delivery quotes, payment methods and order placement.
package handler

import (
	"context"
	"net/http"

	"github.com/xenking/storefront-checkout/internal/domain/cart"
	"github.com/xenking/storefront-checkout/internal/domain/delivery"
	"github.com/xenking/storefront-checkout/internal/domain/location"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

// Quoter prices a delivery.
type Quoter interface {
	Quote(ctx context.Context, city, country string) (*delivery.Quote, error)
}

// Orders places and reads orders.
type Orders interface {
	Create(ctx context.Context, sessionID string, fields map[string]string) (*order.Order, error)
	Get(ctx context.Context, number string) (*order.Order, error)
}

// Carts reads session carts.
type Carts interface {
	Items(ctx context.Context, sessionID string) ([]cart.Item, error)
}

// Handler holds the domain dependencies of the API.
type Handler struct {
	locations location.Repository
	fees      Quoter
	orders    Orders
	carts     Carts
}

// New returns a Handler.
func New(locations location.Repository, fees Quoter, orders Orders, carts Carts) *Handler {
	return &Handler{
		locations: locations,
		fees:      fees,
		orders:    orders,
		carts:     carts,
	}
}

// Register mounts the API routes on mux. Paths keep their trailing slash and
// match exactly.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /orders/api/checkout/{$}", h.Checkout)
	mux.HandleFunc("GET /orders/api/regions/{$}", h.Regions)
	mux.HandleFunc("GET /orders/api/regions/{id}/cities/{$}", h.Cities)
	mux.HandleFunc("POST /orders/api/calculate-delivery-fee/{$}", h.DeliveryFee)
	mux.HandleFunc("GET /orders/api/delivery-methods/{$}", h.PaymentMethods)
	mux.HandleFunc("GET /orders/api/payment-logo/{method}/{$}", h.PaymentLogo)
	mux.HandleFunc("POST /orders/api/create-order/{$}", h.CreateOrder)
	mux.HandleFunc("GET /orders/commande/{number}/{$}", h.OrderDetail)
}
