package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-checkout/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

const (
	insertOrderSQL = `INSERT INTO orders (
		order_number, session_id, status,
		shipping_first_name, shipping_last_name, shipping_phone, shipping_address,
		shipping_city, shipping_postal_code, shipping_country, shipping_region,
		payment_method, notes, billing_address,
		subtotal, shipping_cost, tax_amount, total_amount
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	RETURNING id, created_at`
	insertOrderItemSQL = `INSERT INTO order_items (order_id, product_name, quantity, unit_price, total_price)
	VALUES ($1, $2, $3, $4, $5)`
	insertStatusSQL = `INSERT INTO order_status_history (order_id, status, notes) VALUES ($1, $2, $3)`

	orderByNumberSQL = `SELECT id, order_number, session_id, status,
		shipping_first_name, shipping_last_name, shipping_phone, shipping_address,
		shipping_city, shipping_postal_code, shipping_country, shipping_region,
		payment_method, notes, billing_address,
		subtotal, shipping_cost, tax_amount, total_amount, created_at
	FROM orders WHERE order_number = $1`
	orderItemsSQL = `SELECT product_name, quantity, unit_price, total_price
	FROM order_items WHERE order_id = $1 ORDER BY id`
)

// createdNote is the first status history entry of every order.
const createdNote = "Commande créée"

// OrderRepository implements order.Repository.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create stores the order, its lines and first status entry, and empties the
// session cart in a single transaction.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		s := o.Shipping
		if err := tx.QueryRow(ctx, insertOrderSQL,
			o.Number, o.SessionID, string(o.Status),
			s.FirstName, s.LastName, s.Phone, s.Address,
			s.City, s.PostalCode, s.Country, s.Region,
			o.PaymentMethod, o.Notes, o.BillingAddress,
			o.Subtotal, o.ShippingCost, o.TaxAmount, o.Total,
		).Scan(&o.ID, &o.CreatedAt); err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, it := range o.Items {
			batch.Queue(insertOrderItemSQL, o.ID, it.ProductName, it.Quantity, it.UnitPrice, it.TotalPrice)
		}
		batch.Queue(insertStatusSQL, o.ID, string(o.Status), createdNote)
		batch.Queue(clearCartSQL, o.SessionID)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting order lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.Number, err)
	}
	return nil
}

// GetByNumber loads an order with its lines.
func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var (
		o      order.Order
		s      = &o.Shipping
		status string
	)
	err := r.pool.QueryRow(ctx, orderByNumberSQL, number).Scan(
		&o.ID, &o.Number, &o.SessionID, &status,
		&s.FirstName, &s.LastName, &s.Phone, &s.Address,
		&s.City, &s.PostalCode, &s.Country, &s.Region,
		&o.PaymentMethod, &o.Notes, &o.BillingAddress,
		&o.Subtotal, &o.ShippingCost, &o.TaxAmount, &o.Total, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", number, err)
	}
	o.Status = order.Status(status)

	rows, err := r.pool.Query(ctx, orderItemsSQL, o.ID)
	if err != nil {
		return nil, fmt.Errorf("listing items of order %q: %w", number, err)
	}
	o.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.Item, error) {
		var it order.Item
		err := row.Scan(&it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning items of order %q: %w", number, err)
	}
	return &o, nil
}
