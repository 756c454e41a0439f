package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"momo-store/models"
)

func (p *Postgres) ApprovedReviews(ctx context.Context, limit int) ([]models.Review, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT name, rating, review, avatar, date, is_approved, created_at FROM reviews
		WHERE is_approved
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.Name, &r.Rating, &r.Review, &r.Avatar, &r.Date, &r.IsApproved, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (p *Postgres) CreateReview(ctx context.Context, r *models.Review) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO reviews (name, rating, review, avatar, date, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.Name, r.Rating, r.Review, r.Avatar, r.Date, r.IsApproved, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (p *Postgres) BulkCreateReviews(ctx context.Context, reviews []models.Review) error {
	return copyReviews(ctx, p.pool, reviews)
}

func copyReviews(ctx context.Context, db copier, reviews []models.Review) error {
	_, err := db.CopyFrom(
		ctx,
		pgx.Identifier{"reviews"},
		[]string{"name", "rating", "review", "avatar", "date", "is_approved", "created_at"},
		pgx.CopyFromSlice(len(reviews), func(i int) ([]any, error) {
			r := reviews[i]
			return []any{r.Name, r.Rating, r.Review, r.Avatar, r.Date, r.IsApproved, r.CreatedAt}, nil
		}),
	)
	return err
}

func (p *Postgres) CreateContact(ctx context.Context, m *models.ContactMessage) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO contact_messages (name, phone, email, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.Name, m.Phone, m.Email, m.Message, m.IsRead, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (p *Postgres) ContactMessages(ctx context.Context, limit, offset int) ([]models.ContactMessage, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT name, phone, email, message, is_read, created_at FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query contact messages: %w", err)
	}
	defer rows.Close()

	msgs := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.Name, &m.Phone, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
