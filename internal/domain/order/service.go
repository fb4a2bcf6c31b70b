// Package order turns a session cart and a posted checkout form into a
// persisted order.
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/internal/domain/cart"
)

// ErrEmptyCart is returned when the session cart has no items.
var ErrEmptyCart = errors.New("cart is empty")

// CartReader reads the items of a session cart.
type CartReader interface {
	Items(ctx context.Context, sessionID string) ([]cart.Item, error)
}

// NewNumber returns a fresh order number such as CMD-1A2B3C4D.
func NewNumber() string {
	id := uuid.New()
	return "CMD-" + strings.ToUpper(fmt.Sprintf("%x", id[:4]))
}

// Option configures a Service.
type Option func(*Service)

// WithNumbers overrides the order number generator.
func WithNumbers(fn func() string) Option { return func(s *Service) { s.number = fn } }

// Service encapsulates order placement.
type Service struct {
	carts    CartReader
	orders   Repository
	validate *validator.Validate
	number   func() string
}

// NewService creates an order Service.
func NewService(carts CartReader, orders Repository, opts ...Option) *Service {
	s := &Service{
		carts:    carts,
		orders:   orders,
		validate: newValidator(),
		number:   NewNumber,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create validates the posted fields, prices the session cart, and persists
// the order. It returns *ValidationError for an invalid form and ErrEmptyCart
// when there is nothing to order.
func (s *Service) Create(ctx context.Context, sessionID string, fields map[string]string) (*Order, error) {
	form := FormFromFields(fields)
	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}

	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]Item, len(items))
	for i, it := range items {
		lines[i] = Item{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.Total(),
		}
	}

	subtotal := cart.Subtotal(items)
	shipping := form.Fee()
	o := &Order{
		Number:    s.number(),
		SessionID: sessionID,
		Status:    StatusPending,
		Shipping: Shipping{
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			Phone:      form.Phone,
			Address:    form.Address,
			City:       form.ResolvedCity(),
			PostalCode: form.PostalCode,
			Country:    form.Country,
			Region:     form.Region,
		},
		PaymentMethod:  form.PaymentMethod,
		Notes:          form.Notes,
		BillingAddress: form.Billing,
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		TaxAmount:      decimal.Zero,
		Total:          subtotal.Add(shipping),
		Items:          lines,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// Get returns the order with the given number.
func (s *Service) Get(ctx context.Context, number string) (*Order, error) {
	o, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("get order %q: %w", number, err)
	}
	return o, nil
}
