package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"momo-store/models"
)

const orderColumns = `order_id, customer_name, customer_phone, customer_email, delivery_address, delivery_type,
	items, subtotal, delivery_charge, total, payment_method, payment_status, order_status, created_at, updated_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.OrderID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.DeliveryAddress, &o.DeliveryType,
		&o.Items, &o.Subtotal, &o.DeliveryCharge, &o.Total, &o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (p *Postgres) CreateOrder(ctx context.Context, o *models.Order) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.OrderID, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.DeliveryAddress, o.DeliveryType,
		o.Items, o.Subtotal, o.DeliveryCharge, o.Total, o.PaymentMethod, o.PaymentStatus, o.OrderStatus,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.OrderID, err)
	}
	return nil
}

func (p *Postgres) Order(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := scanOrder(p.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return &o, nil
}

// Orders lists orders newest first, optionally filtered by order status.
func (p *Postgres) Orders(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1::text = '' OR order_status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		status, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
