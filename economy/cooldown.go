package economy

import (
	"sync"
	"time"
)

// Per-activity cooldown windows. Activities absent from this table are
// unlimited and never recorded.
var cooldownWindows = map[Kind]time.Duration{
	KindDaily:   24 * time.Hour,
	KindBeg:     30 * time.Second,
	KindRobBank: 2 * time.Hour,
}

// Window returns an activity's cooldown window. ok is false for unlimited
// activities.
func Window(activity Kind) (time.Duration, bool) {
	d, ok := cooldownWindows[activity]
	return d, ok
}

type claimKey struct {
	userID   string
	activity Kind
}

// CooldownTracker records last-claim timestamps per (user, activity) and
// answers whether an activity is allowed right now. An absent entry means
// "never claimed".
type CooldownTracker struct {
	mu   sync.Mutex
	last map[claimKey]time.Time
	now  func() time.Time
}

// NewCooldownTracker creates an empty tracker.
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		last: make(map[claimKey]time.Time),
		now:  time.Now,
	}
}

// TryClaim checks whether the activity is allowed for the user. When it is
// allowed and the activity defines a window, the attempt is recorded in the
// same critical section, so two near-simultaneous claims can never both
// pass. Unlimited activities are always allowed and never recorded.
func (t *CooldownTracker) TryClaim(userID string, activity Kind) (bool, time.Duration) {
	window, gated := cooldownWindows[activity]
	if !gated {
		return true, 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := claimKey{userID: userID, activity: activity}
	now := t.now()
	if last, ok := t.last[key]; ok {
		next := last.Add(window)
		if now.Before(next) {
			return false, next.Sub(now)
		}
	}
	t.last[key] = now
	return true, 0
}

// RecordClaim stores or overwrites the last-claim timestamp. TryClaim
// already records allowed attempts; this exists for callers that need to
// backdate or reset a claim explicitly.
func (t *CooldownTracker) RecordClaim(userID string, activity Kind, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[claimKey{userID: userID, activity: activity}] = at
}
