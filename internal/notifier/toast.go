package notifier

import (
	"sync"
	"time"

	"github.com/amishk599/resumehub/internal/model"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 5 * time.Second

var _ model.Notifier = (*Toaster)(nil)

// Toaster keeps the latest notification only. Showing a new one replaces the
// previous, and it disappears once its TTL has passed.
type Toaster struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	last *model.Notification
}

// NewToaster returns a Toaster that hides notifications after ttl. A non-positive
// ttl uses DefaultTTL.
func NewToaster(ttl time.Duration) *Toaster {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Toaster{ttl: ttl, now: time.Now}
}

// Notify replaces the current toast. A zero At is stamped with the current time.
func (t *Toaster) Notify(n model.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n.At.IsZero() {
		n.At = t.now()
	}
	t.last = &n
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (model.Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return model.Notification{}, false
	}
	if t.last.Expired(t.now(), t.ttl) {
		t.last = nil
		return model.Notification{}, false
	}
	return *t.last, true
}

// TTL returns how long a toast stays visible.
func (t *Toaster) TTL() time.Duration {
	return t.ttl
}

// Dismiss hides the current toast.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	t.last = nil
	t.mu.Unlock()
}

// Multi fans a notification out to several notifiers.
type Multi []model.Notifier

var _ model.Notifier = Multi(nil)

func (m Multi) Notify(n model.Notification) {
	for _, nt := range m {
		nt.Notify(n)
	}
}
