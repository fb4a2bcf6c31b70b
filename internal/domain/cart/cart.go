// Package cart models the anonymous shopping cart attached to a browser
// session.
package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is one cart line.
type Item struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Total returns unit price times quantity.
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal sums the line totals.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// Repository reads and fills session carts. Carts are cleared by the order
// repository in the same transaction that stores the order.
type Repository interface {
	Items(ctx context.Context, sessionID string) ([]Item, error)
	AddItem(ctx context.Context, sessionID string, item Item) error
}
