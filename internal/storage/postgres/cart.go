package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-checkout/internal/domain/cart"
)

var _ cart.Repository = (*CartRepository)(nil)

const (
	cartItemsSQL = `SELECT product_name, quantity, unit_price FROM cart_items
	WHERE session_id = $1 ORDER BY id`
	addCartItemSQL = `INSERT INTO cart_items (session_id, product_name, quantity, unit_price)
	VALUES ($1, $2, $3, $4)`
	clearCartSQL = `DELETE FROM cart_items WHERE session_id = $1`
)

// CartRepository implements cart.Repository.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Items returns the cart lines of a session in insertion order.
func (r *CartRepository) Items(ctx context.Context, sessionID string) ([]cart.Item, error) {
	rows, err := r.pool.Query(ctx, cartItemsSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing cart items: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (cart.Item, error) {
		var it cart.Item
		err := row.Scan(&it.ProductName, &it.Quantity, &it.UnitPrice)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning cart items: %w", err)
	}
	return items, nil
}

// AddItem appends a line to a session cart.
func (r *CartRepository) AddItem(ctx context.Context, sessionID string, it cart.Item) error {
	if _, err := r.pool.Exec(ctx, addCartItemSQL, sessionID, it.ProductName, it.Quantity, it.UnitPrice); err != nil {
		return fmt.Errorf("adding cart item %q: %w", it.ProductName, err)
	}
	return nil
}
