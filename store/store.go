// Package store persists the storefront API's data in PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"momo-store/models"
)

var ErrNotFound = errors.New("not found")

// Store is everything the API server reads and writes.
type Store interface {
	MenuItems(ctx context.Context, category string) ([]models.MenuItem, error)
	MenuItem(ctx context.Context, id int64) (*models.MenuItem, error)

	CreateOrder(ctx context.Context, o *models.Order) error
	Order(ctx context.Context, orderID string) (*models.Order, error)
	Orders(ctx context.Context, status string, limit, offset int) ([]models.Order, error)

	ApprovedReviews(ctx context.Context, limit int) ([]models.Review, error)
	CreateReview(ctx context.Context, r *models.Review) error

	CreateContact(ctx context.Context, m *models.ContactMessage) error
	ContactMessages(ctx context.Context, limit, offset int) ([]models.ContactMessage, error)
}

type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}
