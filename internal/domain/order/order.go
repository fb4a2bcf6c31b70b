package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Status is an order lifecycle state.
type Status string

// StatusPending is the state of a freshly created order.
const StatusPending Status = "pending"

// ErrNotFound is returned when no order has the requested number.
var ErrNotFound = errors.New("order not found")

// Shipping is where and to whom the order ships.
type Shipping struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
	Region     string
}

// Order is a placed checkout.
type Order struct {
	ID             int64
	Number         string
	SessionID      string
	Status         Status
	Shipping       Shipping
	PaymentMethod  string
	Notes          string
	BillingAddress string
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Items          []Item
	CreatedAt      time.Time
}

// Item is an order line copied from the cart at checkout.
type Item struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Repository persists orders.
type Repository interface {
	// Create stores o with its items and a first status history entry, and
	// empties the session cart, in one transaction. It sets o.ID and
	// o.CreatedAt.
	Create(ctx context.Context, o *Order) error
	// GetByNumber returns ErrNotFound for unknown numbers.
	GetByNumber(ctx context.Context, number string) (*Order, error)
}
