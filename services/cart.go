package services

import (
	"sync"

	"momo-store/models"
)

// CartLine is one menu item and how many of it are in the cart.
type CartLine struct {
	models.MenuItem
	Quantity int
}

func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is a point-in-time copy of the store. Totals are derived from Lines.
type Cart struct {
	Lines []CartLine
	Open  bool
}

func (c Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// OrderItems converts the lines into the order payload shape.
func (c Cart) OrderItems() []models.OrderItem {
	items := make([]models.OrderItem, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = models.OrderItem{ItemID: l.ID, Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	}
	return items
}

// CartStore owns the session's cart lines. Views read it through Snapshot or
// Subscribe and change it only through its methods.
type CartStore struct {
	mu      sync.Mutex
	lines   []CartLine
	open    bool
	subs    map[int]func(Cart)
	nextSub int
}

func NewCartStore() *CartStore {
	return &CartStore{subs: make(map[int]func(Cart))}
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes the subscription.
func (s *CartStore) Subscribe(fn func(Cart)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Add inserts item with quantity 1, or bumps the quantity of its existing line.
func (s *CartStore) Add(item models.MenuItem) {
	s.mutate(func() bool {
		if i := s.indexOf(item.ID); i >= 0 {
			s.lines[i].Quantity++
			return true
		}
		s.lines = append(s.lines, CartLine{MenuItem: item, Quantity: 1})
		return true
	})
}

// UpdateQuantity sets the quantity of itemID's line; quantity <= 0 removes it.
// Unknown ids are ignored.
func (s *CartStore) UpdateQuantity(itemID int64, quantity int) {
	s.mutate(func() bool {
		i := s.indexOf(itemID)
		if i < 0 {
			return false
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
		s.lines[i].Quantity = quantity
		return true
	})
}

func (s *CartStore) Remove(itemID int64) {
	s.mutate(func() bool {
		i := s.indexOf(itemID)
		if i < 0 {
			return false
		}
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return true
	})
}

func (s *CartStore) Clear() {
	s.mutate(func() bool {
		if len(s.lines) == 0 {
			return false
		}
		s.lines = nil
		return true
	})
}

func (s *CartStore) SetOpen(open bool) {
	s.mutate(func() bool {
		if s.open == open {
			return false
		}
		s.open = open
		return true
	})
}

func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *CartStore) Total() int64 {
	return s.Snapshot().Total()
}

func (s *CartStore) Count() int {
	return s.Snapshot().Count()
}

func (s *CartStore) Lines() []CartLine {
	return s.Snapshot().Lines
}

// Quantity returns the quantity of itemID's line, 0 when absent.
func (s *CartStore) Quantity(itemID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(itemID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

func (s *CartStore) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CartStore) snapshotLocked() Cart {
	lines := make([]CartLine, len(s.lines))
	copy(lines, s.lines)
	return Cart{Lines: lines, Open: s.open}
}

func (s *CartStore) indexOf(itemID int64) int {
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			return i
		}
	}
	return -1
}

// mutate runs fn under the lock and, if it reports a change, notifies
// subscribers outside the lock so they may call back into the store.
func (s *CartStore) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := make([]func(Cart), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}
