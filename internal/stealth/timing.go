// Package stealth provides browser-bootstrap ambient behaviors that sit
// outside the cursor engine proper: fingerprint masking and coarse pacing
// delays around navigation, used by internal/browser.
package stealth

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// TimingController handles randomized delays around page navigation and
// demo pacing, independent of any cursor trajectory timing (which lives in
// internal/cursor's own Fitts' Law model).
type TimingController struct {
	logger zerolog.Logger
}

// NewTimingController creates a new timing controller.
func NewTimingController(logger zerolog.Logger) *TimingController {
	return &TimingController{
		logger: logger.With().Str("module", "timing").Logger(),
	}
}

// PageLoadDelay waits after page navigation (1-3 seconds).
func (t *TimingController) PageLoadDelay() {
	delay := 1.0 + rand.Float64()*2.0
	duration := time.Duration(delay * float64(time.Second))

	t.logger.Debug().Dur("delay", duration).Msg("page load delay")
	time.Sleep(duration)
}

// ThinkDelay simulates time spent reading/thinking between demo steps
// (2-5 seconds).
func (t *TimingController) ThinkDelay() {
	delay := 2.0 + rand.Float64()*3.0
	duration := time.Duration(delay * float64(time.Second))

	t.logger.Debug().Dur("delay", duration).Msg("think delay")
	time.Sleep(duration)
}

// ShortDelay adds a brief pause (100-500ms).
func (t *TimingController) ShortDelay() {
	delay := 100 + rand.Intn(400)
	time.Sleep(time.Duration(delay) * time.Millisecond)
}

// normalRandom generates a random number from a normal distribution via
// Box-Muller, kept for RandomDelay's natural-variance pacing.
func (t *TimingController) normalRandom(mean, stdDev float64) float64 {
	u1 := rand.Float64()
	for u1 == 0 {
		u1 = rand.Float64()
	}
	u2 := rand.Float64()

	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}

// RandomDelay sleeps for a random duration between min and max seconds,
// using a normal distribution clamped to bounds for more natural variance.
func (t *TimingController) RandomDelay(minSeconds, maxSeconds int) {
	if minSeconds >= maxSeconds {
		minSeconds = 1
		maxSeconds = 3
	}

	mean := float64(minSeconds+maxSeconds) / 2
	stdDev := float64(maxSeconds-minSeconds) / 4
	delay := t.normalRandom(mean, stdDev)

	if delay < float64(minSeconds) {
		delay = float64(minSeconds)
	}
	if delay > float64(maxSeconds) {
		delay = float64(maxSeconds)
	}

	duration := time.Duration(delay * float64(time.Second))
	t.logger.Debug().Dur("delay", duration).Msg("random delay")
	time.Sleep(duration)
}
