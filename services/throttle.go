package services

import (
	"math"
	"sync"
	"time"
)

const (
	ThrottleReview             = "review"
	ThrottleContact            = "contact"
	ThrottleCooldownCapSeconds = 30
)

type throttleKey struct {
	chatID int64
	kind   string
}

type throttleState struct {
	count         int
	cooldownUntil time.Time
}

// SubmissionThrottle slows down repeated review and contact submissions from
// one chat: every submission sets a cooldown of min(30, 2^count) seconds.
type SubmissionThrottle struct {
	mu    sync.Mutex
	state map[throttleKey]throttleState
}

func NewSubmissionThrottle() *SubmissionThrottle {
	return &SubmissionThrottle{state: make(map[throttleKey]throttleState)}
}

// WaitSeconds returns how many seconds the chat must wait before submitting
// again (0 if no cooldown).
func (t *SubmissionThrottle) WaitSeconds(chatID int64, kind string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.state[throttleKey{chatID, kind}]
	if !ok || !now.Before(st.cooldownUntil) {
		return 0
	}
	return int(st.cooldownUntil.Sub(now).Seconds()) + 1 // round up
}

// Record counts a submission and extends the cooldown.
func (t *SubmissionThrottle) Record(chatID int64, kind string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := throttleKey{chatID, kind}
	st := t.state[k]
	st.count++
	st.cooldownUntil = now.Add(time.Duration(CooldownSecondsForCount(st.count)) * time.Second)
	t.state[k] = st
}

// Reset forgets the chat's submissions of kind.
func (t *SubmissionThrottle) Reset(chatID int64, kind string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.state, throttleKey{chatID, kind})
}

// CooldownSecondsForCount returns min(30, 2^count).
func CooldownSecondsForCount(count int) int {
	s := math.Pow(2, float64(count))
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return int(s)
}
