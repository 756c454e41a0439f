package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momo-store/models"
)

var (
	vegTandoori = models.MenuItem{ID: 101, Name: "Veg Tandoori Momos", Price: 80, IsVeg: true}
	vegAfghani  = models.MenuItem{ID: 201, Name: "Veg Afghani Momos", Price: 90, IsVeg: true}
	chkSteamed  = models.MenuItem{ID: 402, Name: "Chicken Steamed Momos", Price: 100}
)

func TestCartAddSameItemTwice(t *testing.T) {
	s := NewCartStore()
	s.Add(vegTandoori)
	s.Add(vegTandoori)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(101), lines[0].ID)
}

func TestCartTotalsExample(t *testing.T) {
	s := NewCartStore()
	s.Add(vegTandoori)
	s.Add(vegTandoori)
	s.Add(vegAfghani)

	assert.Equal(t, int64(250), s.Total())
	assert.Equal(t, 3, s.Count())
	// repeated reads without mutation are stable
	assert.Equal(t, s.Total(), s.Total())
	assert.Equal(t, s.Count(), s.Count())
}

func TestCartUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantLen  int
	}{
		{"set positive", 5, 1},
		{"zero removes", 0, 0},
		{"negative removes", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCartStore()
			s.Add(vegTandoori)
			s.UpdateQuantity(vegTandoori.ID, tt.quantity)
			assert.Len(t, s.Lines(), tt.wantLen)
			assert.Equal(t, max(tt.quantity, 0), s.Quantity(vegTandoori.ID))
		})
	}
}

func TestCartUpdateUnknownIsNoop(t *testing.T) {
	s := NewCartStore()
	s.Add(vegTandoori)
	calls := 0
	s.Subscribe(func(Cart) { calls++ })

	s.UpdateQuantity(999, 3)
	s.Remove(999)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Count())
}

func TestCartRemoveAndClear(t *testing.T) {
	s := NewCartStore()
	s.Add(vegTandoori)
	s.Add(vegAfghani)
	s.Add(chkSteamed)

	s.Remove(vegAfghani.ID)
	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, vegTandoori.ID, lines[0].ID)
	assert.Equal(t, chkSteamed.ID, lines[1].ID)

	s.Clear()
	assert.Empty(t, s.Lines())
	assert.Zero(t, s.Total())
	assert.Zero(t, s.Count())
}

func TestCartSubscribers(t *testing.T) {
	s := NewCartStore()
	var got []Cart
	unsubscribe := s.Subscribe(func(c Cart) { got = append(got, c) })

	s.Add(vegTandoori)
	s.SetOpen(true)
	s.SetOpen(true) // unchanged, no notification
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Count())
	assert.True(t, got[1].Open)

	unsubscribe()
	unsubscribe()
	s.Add(vegTandoori)
	assert.Len(t, got, 2)
}

func TestCartSnapshotIsACopy(t *testing.T) {
	s := NewCartStore()
	s.Add(vegTandoori)
	snap := s.Snapshot()
	snap.Lines[0].Quantity = 99

	assert.Equal(t, 1, s.Quantity(vegTandoori.ID))
}

func TestCartTotalMatchesLines(t *testing.T) {
	items := []models.MenuItem{vegTandoori, vegAfghani, chkSteamed}
	r := rand.New(rand.NewSource(7))
	s := NewCartStore()

	for i := 0; i < 500; i++ {
		it := items[r.Intn(len(items))]
		switch r.Intn(4) {
		case 0, 1:
			s.Add(it)
		case 2:
			s.UpdateQuantity(it.ID, r.Intn(6)-1)
		case 3:
			s.Remove(it.ID)
		}

		var want int64
		count := 0
		seen := map[int64]bool{}
		for _, l := range s.Lines() {
			require.False(t, seen[l.ID], "duplicate line for %d", l.ID)
			require.GreaterOrEqual(t, l.Quantity, 1)
			seen[l.ID] = true
			want += l.Price * int64(l.Quantity)
			count += l.Quantity
		}
		require.Equal(t, want, s.Total())
		require.Equal(t, count, s.Count())
	}
}

func TestCartOrderItems(t *testing.T) {
	s := NewCartStore()
	s.Add(vegTandoori)
	s.Add(vegTandoori)

	assert.Equal(t, []models.OrderItem{{ItemID: 101, Name: "Veg Tandoori Momos", Price: 80, Quantity: 2}}, s.Snapshot().OrderItems())
}
