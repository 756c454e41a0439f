package models

import "encoding/json"

type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsVeg       bool   `json:"isVeg"`
	Image       string `json:"image"`
	Category    string `json:"category,omitempty"`
	IsAvailable bool   `json:"-"`
}

// UnmarshalJSON accepts both the storefront spelling (id, isVeg) and the
// stored-row spelling (item_id, is_veg).
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          *int64 `json:"id"`
		ItemID      *int64 `json:"item_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		IsVeg       *bool  `json:"isVeg"`
		IsVegSnake  *bool  `json:"is_veg"`
		Image       string `json:"image"`
		Category    string `json:"category"`
		IsAvailable *bool  `json:"is_available"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = MenuItem{
		Name:        raw.Name,
		Description: raw.Description,
		Price:       raw.Price,
		Image:       raw.Image,
		Category:    raw.Category,
		IsAvailable: true,
	}
	switch {
	case raw.ID != nil:
		m.ID = *raw.ID
	case raw.ItemID != nil:
		m.ID = *raw.ItemID
	}
	switch {
	case raw.IsVeg != nil:
		m.IsVeg = *raw.IsVeg
	case raw.IsVegSnake != nil:
		m.IsVeg = *raw.IsVegSnake
	}
	if raw.IsAvailable != nil {
		m.IsAvailable = *raw.IsAvailable
	}
	return nil
}

// MenuCategory groups menu items. Items is never nil once normalized.
type MenuCategory struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Items       []MenuItem `json:"items"`
}
