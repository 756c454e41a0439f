package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"momo-store/models"
)

// SeedMenu is the opening menu of the restaurant.
var SeedMenu = []models.MenuItem{
	{ID: 101, Name: "Veg Tandoori Momos", Description: "Crispy grilled momos with mixed vegetables", Price: 80, Category: "Tandoori Momos", IsVeg: true, Image: "https://images.unsplash.com/photo-1625220194771-7ebdea0b70b9", IsAvailable: true},
	{ID: 102, Name: "Chicken Tandoori Momos", Description: "Juicy chicken momos with tandoori spices", Price: 120, Category: "Tandoori Momos", Image: "https://images.unsplash.com/photo-1694923450868-b432a8ee52aa", IsAvailable: true},
	{ID: 103, Name: "Paneer Tandoori Momos", Description: "Cottage cheese filled momos with tandoori coating", Price: 100, Category: "Tandoori Momos", IsVeg: true, Image: "https://images.unsplash.com/photo-1738608084602-f9543952188e", IsAvailable: true},
	{ID: 201, Name: "Veg Afghani Momos", Description: "Momos tossed in creamy afghani sauce", Price: 90, Category: "Afghani Momos", IsVeg: true, Image: "https://images.unsplash.com/photo-1534422298391-e4f8c172dddb", IsAvailable: true},
	{ID: 202, Name: "Chicken Afghani Momos", Description: "Tender chicken momos in white creamy sauce", Price: 130, Category: "Afghani Momos", Image: "https://images.pexels.com/photos/5409010/pexels-photo-5409010.jpeg", IsAvailable: true},
	{ID: 301, Name: "Veg Chilli Momos", Description: "Spicy momos with bell peppers and onions", Price: 85, Category: "Chilli Momos", IsVeg: true, Image: "https://images.pexels.com/photos/3911228/pexels-photo-3911228.jpeg", IsAvailable: true},
	{ID: 302, Name: "Chicken Chilli Momos", Description: "Fiery chicken momos in spicy sauce", Price: 125, Category: "Chilli Momos", Image: "https://images.unsplash.com/photo-1589047133481-02b4a5327d89", IsAvailable: true},
	{ID: 303, Name: "Paneer Chilli Momos", Description: "Cottage cheese momos with spicy gravy", Price: 95, Category: "Chilli Momos", IsVeg: true, Image: "https://images.unsplash.com/photo-1523905330026-b8bd1f5f320e", IsAvailable: true},
	{ID: 401, Name: "Veg Steamed Momos", Description: "Classic steamed momos with vegetables", Price: 60, Category: "Steamed Momos", IsVeg: true, Image: "https://images.unsplash.com/photo-1523905330026-b8bd1f5f320e", IsAvailable: true},
	{ID: 402, Name: "Chicken Steamed Momos", Description: "Traditional chicken momos steamed to perfection", Price: 100, Category: "Steamed Momos", Image: "https://images.unsplash.com/photo-1694923450868-b432a8ee52aa", IsAvailable: true},
	{ID: 403, Name: "Mixed Steamed Momos", Description: "Combination of veg and chicken momos", Price: 110, Category: "Steamed Momos", Image: "https://images.unsplash.com/photo-1625220194771-7ebdea0b70b9", IsAvailable: true},
}

// SeedReviews are the approved reviews shown before any customer submits one.
var SeedReviews = []models.Review{
	{Name: "Rahul Kumar", Rating: 5, Date: "2 weeks ago", Avatar: "RK", IsApproved: true,
		Review: "Amazing taste! The tandoori momos are absolutely delicious. Crunchy coating with flavorful filling. Best momos in Bhagalpur!"},
	{Name: "Priya Singh", Rating: 4, Date: "1 month ago", Avatar: "PS", IsApproved: true,
		Review: "Great value for money. The spicy fillings are perfect. Staff is very attentive and service is quick. Highly recommended!"},
	{Name: "Amit Sharma", Rating: 5, Date: "3 weeks ago", Avatar: "AS", IsApproved: true,
		Review: "Authentic Delhi-style taste in Bhagalpur. The afghani momos are creamy and delicious. Will definitely come back!"},
	{Name: "Sneha Verma", Rating: 4, Date: "1 week ago", Avatar: "SV", IsApproved: true,
		Review: "Loved the chilli momos! Spicy and tangy just the way I like it. Good hygiene and friendly staff."},
}

// Seed loads the opening menu and reviews into an empty database. It does
// nothing when menu items already exist. It reports whether rows were added.
func (p *Postgres) Seed(ctx context.Context) (bool, error) {
	n, err := p.CountMenuItems(ctx)
	if err != nil {
		return false, fmt.Errorf("count menu items: %w", err)
	}
	if n > 0 {
		log.Info().Int("menu_items", n).Msg("seed skipped, menu not empty")
		return false, nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if err := copyMenuItems(ctx, tx, SeedMenu); err != nil {
		return false, fmt.Errorf("seed menu: %w", err)
	}
	now := time.Now().UTC()
	reviews := make([]models.Review, len(SeedReviews))
	for i, r := range SeedReviews {
		// keep display order: first review is newest
		r.CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		reviews[i] = r
	}
	if err := copyReviews(ctx, tx, reviews); err != nil {
		return false, fmt.Errorf("seed reviews: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	log.Info().Int("menu_items", len(SeedMenu)).Int("reviews", len(reviews)).Msg("database seeded")
	return true, nil
}
