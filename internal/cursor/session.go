package cursor

import (
	"math"
	"sync"
	"time"
)

// recentSizeCapacity bounds the ring buffer of recent target sizes used for
// the repetition factor (§4.4).
const recentSizeCapacity = 5

// defaultTargetSize is used when a caller does not supply one; floorTargetSize
// is the minimum accepted (§4.4).
const (
	defaultTargetSize = 12.0
	floorTargetSize   = 5.0
)

// sessionState tracks session age, movement count, and recent target sizes
// for a single Cursor instance, feeding the Fitts' Law duration model (C4).
type sessionState struct {
	mu            sync.Mutex
	startedAt     time.Time
	now           func() time.Time
	movementCount int
	recentSizes   []float64
}

func newSessionState(now func() time.Time) *sessionState {
	if now == nil {
		now = time.Now
	}
	return &sessionState{startedAt: now(), now: now}
}

// pushTargetSize records a completed movement's target size into the
// bounded ring and increments the movement counter.
func (s *sessionState) pushTargetSize(size float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recentSizes = append(s.recentSizes, size)
	if len(s.recentSizes) > recentSizeCapacity {
		s.recentSizes = s.recentSizes[len(s.recentSizes)-recentSizeCapacity:]
	}
	s.movementCount++
}

// fatigueFactor grows slowly with session age, capped at 1.15 (§4.4).
func (s *sessionState) fatigueFactor() float64 {
	s.mu.Lock()
	age := s.now().Sub(s.startedAt)
	s.mu.Unlock()

	seconds := age.Seconds()
	f := 1 + min(seconds/120*0.01, 0.15)
	return f
}

// repetitionFactor requires at least 3 prior movements and 3 ring entries;
// otherwise it is a no-op multiplier. Variance thresholds are the ones the
// duration model specifies directly (§4.4).
func (s *sessionState) repetitionFactor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.movementCount < 3 || len(s.recentSizes) < 3 {
		return 1.0
	}

	var sum float64
	for _, v := range s.recentSizes {
		sum += v
	}
	mean := sum / float64(len(s.recentSizes))

	var variance float64
	for _, v := range s.recentSizes {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(s.recentSizes))

	switch {
	case variance < 100:
		return 0.85
	case variance < 500:
		return 0.92
	default:
		return 1.0
	}
}

// fittsDuration implements the Fitts' Law duration model from §4.4:
//
//	a   ~ U[0.08, 0.12]
//	b   ~ U[0.12, 0.18]
//	ID  = log2(d/targetSize + 1)
//	T0  = a + b*ID
//	T   = T0 * fatigue * repetition * U[0.75, 1.30]
//	T   = clamp(T, 0.15, 3.0)
//
// targetSize below floorTargetSize is clamped up to it. The session's
// recent-size ring and movement count are updated as a side effect,
// matching the "after duration is computed" ordering in §4.4.
func fittsDuration(r RNG, s *sessionState, d, targetSize float64) time.Duration {
	if targetSize < floorTargetSize {
		targetSize = floorTargetSize
	}

	a := uniform(r, 0.08, 0.12)
	b := uniform(r, 0.12, 0.18)
	id := math.Log2(d/targetSize + 1)
	t0 := a + b*id

	t := t0 * s.fatigueFactor() * s.repetitionFactor() * uniform(r, 0.75, 1.30)

	if t < 0.15 {
		t = 0.15
	}
	if t > 3.0 {
		t = 3.0
	}

	s.pushTargetSize(targetSize)

	return time.Duration(t * float64(time.Second))
}
