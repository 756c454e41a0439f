package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want MenuItem
	}{
		{
			name: "storefront spelling",
			in:   `{"id":101,"name":"Veg Tandoori Momos","price":80,"isVeg":true,"image":"a.jpg"}`,
			want: MenuItem{ID: 101, Name: "Veg Tandoori Momos", Price: 80, IsVeg: true, Image: "a.jpg", IsAvailable: true},
		},
		{
			name: "row spelling",
			in:   `{"item_id":402,"name":"Chicken Steamed Momos","price":100,"is_veg":false,"category":"Steamed Momos","is_available":false}`,
			want: MenuItem{ID: 402, Name: "Chicken Steamed Momos", Price: 100, Category: "Steamed Momos"},
		},
		{
			name: "id wins over item_id",
			in:   `{"id":1,"item_id":2,"isVeg":false,"is_veg":true}`,
			want: MenuItem{ID: 1, IsAvailable: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got MenuItem
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenuItemMarshalHidesAvailability(t *testing.T) {
	b, err := json.Marshal(MenuItem{ID: 7, Name: "x", IsAvailable: true})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "available")
	assert.Contains(t, string(b), `"isVeg":false`)
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range PaymentMethods {
		if !m.Valid() {
			t.Errorf("%q.Valid() = false, want true", m)
		}
	}
	if PaymentMethod("upi").Valid() {
		t.Errorf(`"upi".Valid() = true, want false`)
	}
	if !DeliveryTypePickup.Valid() || DeliveryType("").Valid() {
		t.Errorf("DeliveryType.Valid mismatch")
	}
}
