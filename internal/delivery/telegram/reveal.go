package telegram

import (
	"sync"
	"time"
)

// revealScheduler delays the result of a round so the tapped flag stays on
// screen for a moment. At most one reveal is pending per chat.
type revealScheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[int64]*time.Timer
}

func newRevealScheduler(delay time.Duration) *revealScheduler {
	return &revealScheduler{
		delay:   delay,
		pending: make(map[int64]*time.Timer),
	}
}

// schedule runs fn after the delay, replacing any reveal pending for the chat.
// With a zero delay fn runs immediately on the caller's goroutine.
func (r *revealScheduler) schedule(chatID int64, fn func()) {
	if r.delay <= 0 {
		r.cancel(chatID)
		fn()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.pending[chatID]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		current, ok := r.pending[chatID]
		if !ok || current != t {
			r.mu.Unlock()
			return
		}
		delete(r.pending, chatID)
		r.mu.Unlock()

		fn()
	})
	r.pending[chatID] = t
}

// cancel drops the reveal pending for the chat and reports whether there was one.
func (r *revealScheduler) cancel(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.pending[chatID]
	if !ok {
		return false
	}
	t.Stop()
	delete(r.pending, chatID)
	return true
}

// stop cancels every pending reveal.
func (r *revealScheduler) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for chatID, t := range r.pending {
		t.Stop()
		delete(r.pending, chatID)
	}
}
