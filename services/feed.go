package services

import (
	"context"
	"strings"
	"sync"

	"momo-store/models"
)

type FeedStatus int

const (
	FeedLoading FeedStatus = iota
	FeedError
	FeedReady
)

const (
	MenuUnavailable    = "Menu not available right now"
	ReviewsUnavailable = "Reviews not available right now"
)

// feed is the fetch-and-keep state shared by the menu and reviews views.
// Only the most recently started load may publish its result.
type feed[T any] struct {
	mu      sync.Mutex
	status  FeedStatus
	items   []T
	errMsg  string
	seq     uint64
	failMsg string
}

// begin marks a load as started and returns its sequence number.
func (f *feed[T]) begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.status = FeedLoading
	f.errMsg = ""
	return f.seq
}

// finish publishes a load result unless a newer load has started since.
// A failed load empties the list. apply runs under the lock on success.
func (f *feed[T]) finish(seq uint64, items []T, err error, apply func([]T)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		return false
	}
	if err != nil {
		f.status = FeedError
		f.errMsg = f.failMsg
		f.items = nil
		if apply != nil {
			apply(nil)
		}
		return true
	}
	if items == nil {
		items = []T{}
	}
	f.status = FeedReady
	f.items = items
	if apply != nil {
		apply(items)
	}
	return true
}

// CategorySource lists menu categories. client.Client implements it.
type CategorySource interface {
	Categories(ctx context.Context) ([]models.MenuCategory, error)
}

// MenuState is what a menu view renders. Empty with StatusReady means
// "none available".
type MenuState struct {
	Status     FeedStatus
	Categories []models.MenuCategory
	Active     int64
	Err        string
}

func (s MenuState) Empty() bool {
	return s.Status == FeedReady && len(s.Categories) == 0
}

// MenuFeed loads categories and tracks the selected one.
type MenuFeed struct {
	src    CategorySource
	feed   feed[models.MenuCategory]
	active int64
}

func NewMenuFeed(src CategorySource) *MenuFeed {
	m := &MenuFeed{src: src}
	m.feed.failMsg = MenuUnavailable
	return m
}

// Load fetches the categories. On success the first category becomes active.
func (m *MenuFeed) Load(ctx context.Context) MenuState {
	seq := m.feed.begin()
	cats, err := m.src.Categories(ctx)
	m.feed.finish(seq, cats, err, func(cats []models.MenuCategory) {
		m.active = 0
		if len(cats) > 0 {
			m.active = cats[0].ID
		}
	})
	return m.State()
}

// Retry re-runs Load; it supersedes any load still in flight.
func (m *MenuFeed) Retry(ctx context.Context) MenuState {
	return m.Load(ctx)
}

// Select switches the active category locally. Unknown ids are rejected.
func (m *MenuFeed) Select(categoryID int64) bool {
	m.feed.mu.Lock()
	defer m.feed.mu.Unlock()
	for _, c := range m.feed.items {
		if c.ID == categoryID {
			m.active = categoryID
			return true
		}
	}
	return false
}

func (m *MenuFeed) ActiveCategory() (models.MenuCategory, bool) {
	m.feed.mu.Lock()
	defer m.feed.mu.Unlock()
	for _, c := range m.feed.items {
		if c.ID == m.active {
			return c, true
		}
	}
	return models.MenuCategory{}, false
}

// Item finds a loaded menu item by id across all categories.
func (m *MenuFeed) Item(itemID int64) (models.MenuItem, bool) {
	m.feed.mu.Lock()
	defer m.feed.mu.Unlock()
	for _, c := range m.feed.items {
		for _, it := range c.Items {
			if it.ID == itemID {
				return it, true
			}
		}
	}
	return models.MenuItem{}, false
}

func (m *MenuFeed) State() MenuState {
	m.feed.mu.Lock()
	defer m.feed.mu.Unlock()
	cats := make([]models.MenuCategory, len(m.feed.items))
	copy(cats, m.feed.items)
	return MenuState{Status: m.feed.status, Categories: cats, Active: m.active, Err: m.feed.errMsg}
}

// ReviewSource lists reviews. client.Client implements it.
type ReviewSource interface {
	Reviews(ctx context.Context, limit int) ([]models.Review, error)
}

type ReviewsState struct {
	Status  FeedStatus
	Reviews []models.Review
	Err     string
}

func (s ReviewsState) Empty() bool {
	return s.Status == FeedReady && len(s.Reviews) == 0
}

type ReviewFeed struct {
	src   ReviewSource
	limit int
	feed  feed[models.Review]
}

func NewReviewFeed(src ReviewSource, limit int) *ReviewFeed {
	if limit <= 0 {
		limit = 10
	}
	r := &ReviewFeed{src: src, limit: limit}
	r.feed.failMsg = ReviewsUnavailable
	return r
}

func (r *ReviewFeed) Load(ctx context.Context) ReviewsState {
	seq := r.feed.begin()
	reviews, err := r.src.Reviews(ctx, r.limit)
	if err == nil {
		for i := range reviews {
			reviews[i] = WithReviewDefaults(reviews[i])
		}
	}
	r.feed.finish(seq, reviews, err, nil)
	return r.State()
}

func (r *ReviewFeed) Retry(ctx context.Context) ReviewsState {
	return r.Load(ctx)
}

func (r *ReviewFeed) State() ReviewsState {
	r.feed.mu.Lock()
	defer r.feed.mu.Unlock()
	reviews := make([]models.Review, len(r.feed.items))
	copy(reviews, r.feed.items)
	return ReviewsState{Status: r.feed.status, Reviews: reviews, Err: r.feed.errMsg}
}

const ReviewPlaceholder = "No review text provided."

// WithReviewDefaults fills the fields a review may arrive without.
func WithReviewDefaults(r models.Review) models.Review {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = "Anonymous"
	}
	if r.Rating < 0 || r.Rating > 5 {
		r.Rating = 0
	}
	if strings.TrimSpace(r.Review) == "" {
		r.Review = ReviewPlaceholder
	}
	if r.Avatar == "" {
		r.Avatar = Initials(r.Name, 1)
	}
	return r
}

// Initials returns the upper-cased first letters of the first n words of name.
func Initials(name string, n int) string {
	var b strings.Builder
	for i, part := range strings.Fields(name) {
		if i >= n {
			break
		}
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
