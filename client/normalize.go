package client

import (
	"encoding/json"

	"momo-store/models"
)

// listShape tells which form a list response arrived in.
type listShape int

const (
	shapeUnknown listShape = iota
	shapeArray
	shapeWrapped
)

// listResponse is a list payload that is either a bare JSON array or an object
// wrapping the array under one of a few keys. Anything else decodes to
// shapeUnknown with no items and no error.
type listResponse[T any] struct {
	shape listShape
	items []T
	keys  []string
}

func newListResponse[T any](keys ...string) *listResponse[T] {
	return &listResponse[T]{keys: keys}
}

func (r *listResponse[T]) UnmarshalJSON(data []byte) error {
	r.shape, r.items = shapeUnknown, nil

	var arr []json.RawMessage
	if json.Unmarshal(data, &arr) == nil && arr != nil {
		r.shape, r.items = shapeArray, decodeEach[T](arr)
		return nil
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(data, &obj) != nil {
		return nil
	}
	for _, k := range r.keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var inner []json.RawMessage
		if json.Unmarshal(raw, &inner) == nil && inner != nil {
			r.shape, r.items = shapeWrapped, decodeEach[T](inner)
			return nil
		}
	}
	return nil
}

// decodeEach decodes the elements one by one, dropping the ones that do not
// fit T.
func decodeEach[T any](raws []json.RawMessage) []T {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if json.Unmarshal(raw, &v) != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Items is the canonical list. It is never nil.
func (r *listResponse[T]) Items() []T {
	if r.items == nil {
		return []T{}
	}
	return r.items
}

// normalizeList decodes body into the canonical list. Malformed payloads give
// an empty list.
func normalizeList[T any](body []byte, keys ...string) ([]T, listShape) {
	r := newListResponse[T](keys...)
	if json.Unmarshal(body, r) != nil {
		return []T{}, shapeUnknown
	}
	return r.Items(), r.shape
}

// categoryPayload defers item decoding so one bad item does not drop its
// category.
type categoryPayload struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Items       []json.RawMessage `json:"items"`
}

// NormalizeCategories accepts a bare array or {categories:[...]} / {data:[...]}.
// Every category comes back with a non-nil Items slice.
func NormalizeCategories(body []byte) []models.MenuCategory {
	raws, _ := normalizeList[categoryPayload](body, "categories", "data")
	cats := make([]models.MenuCategory, 0, len(raws))
	for _, c := range raws {
		cats = append(cats, models.MenuCategory{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Items:       decodeEach[models.MenuItem](c.Items),
		})
	}
	return cats
}

func NormalizeItems(body []byte) []models.MenuItem {
	items, _ := normalizeList[models.MenuItem](body, "items", "data")
	return items
}

func NormalizeReviews(body []byte) []models.Review {
	reviews, _ := normalizeList[models.Review](body, "reviews", "data")
	return reviews
}
