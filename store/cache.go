package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"momo-store/models"
)

const menuKeyPrefix = "menu:items:"

func menuKey(category string) string {
	if category == "" {
		return menuKeyPrefix + "*all"
	}
	return menuKeyPrefix + category
}

// CachedStore serves menu reads from Redis and everything else from the
// wrapped Store. Cache failures fall back to the wrapped Store.
type CachedStore struct {
	Store
	rdb *redis.Client
	ttl time.Duration
}

func NewCachedStore(s Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: s, rdb: rdb, ttl: ttl}
}

func (c *CachedStore) MenuItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	key := menuKey(category)
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []models.MenuItem
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		log.Warn().Str("key", key).Msg("menu cache entry unreadable, refetching")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("menu cache get failed")
	}

	items, err := c.Store.MenuItems(ctx, category)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("menu cache set failed")
		}
	}
	return items, nil
}

// InvalidateMenu drops every cached menu listing.
func InvalidateMenu(ctx context.Context, rdb *redis.Client) error {
	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, menuKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan menu keys: %w", err)
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete menu keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
