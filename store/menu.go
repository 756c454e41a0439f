package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"momo-store/models"
)

const menuColumns = `item_id, name, description, price, category, is_veg, image, is_available`

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var it models.MenuItem
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.IsVeg, &it.Image, &it.IsAvailable)
	return it, err
}

// MenuItems lists available items ordered by id, optionally for one category.
func (p *Postgres) MenuItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+menuColumns+` FROM menu_items
		WHERE is_available AND ($1::text = '' OR category = $1)
		ORDER BY item_id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (p *Postgres) MenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	it, err := scanMenuItem(p.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE item_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return &it, nil
}

func (p *Postgres) CountMenuItems(ctx context.Context) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&n)
	return n, err
}

// copier is satisfied by both the pool and a transaction.
type copier interface {
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

// BulkCreateMenuItems copies items into menu_items in one round trip.
func (p *Postgres) BulkCreateMenuItems(ctx context.Context, items []models.MenuItem) error {
	return copyMenuItems(ctx, p.pool, items)
}

func copyMenuItems(ctx context.Context, db copier, items []models.MenuItem) error {
	_, err := db.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{"item_id", "name", "description", "price", "category", "is_veg", "image", "is_available"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			it := items[i]
			return []any{it.ID, it.Name, it.Description, it.Price, it.Category, it.IsVeg, it.Image, it.IsAvailable}, nil
		}),
	)
	return err
}

// GroupCategories groups items by category in first-seen order. Category ids
// are 1-based positions and the category field is dropped from the items.
func GroupCategories(items []models.MenuItem) []models.MenuCategory {
	cats := []models.MenuCategory{}
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(cats)
			index[it.Category] = i
			cats = append(cats, models.MenuCategory{
				ID:    int64(i + 1),
				Name:  it.Category,
				Items: []models.MenuItem{},
			})
		}
		it.Category = ""
		cats[i].Items = append(cats[i].Items, it)
	}
	return cats
}
