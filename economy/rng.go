package economy

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform samples in [0, 1). Injecting it keeps every payout
// branch reachable with a deterministic draw sequence under test.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded Source. Given the same seed, the draw sequence
// is identical on every run.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource returns a Source seeded from the wall clock.
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

// lockedSource serializes draws so evaluators running for different accounts
// can share one underlying generator. *rand.Rand is not safe for concurrent
// use.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// uniformInt maps one draw to an integer in [lo, hi).
func uniformInt(src Source, lo, hi int64) int64 {
	return lo + int64(src.Float64()*float64(hi-lo))
}
