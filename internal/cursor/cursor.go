// Package cursor implements a human-like pointer trajectory engine: it
// plans Bézier-based paths between two points, distorts and tweens them to
// resemble organic movement, times them with a Fitts' Law model, and drives
// an external Sink through the result.
package cursor

import (
	"context"
	"math"
	"sync"
	"time"
)

// Duration selects how a MoveTo or DragAndDrop call is timed. The zero
// value is Auto, which defers to the C4 duration model.
type Duration struct {
	Auto  bool
	Fixed time.Duration
	Split *SplitDuration
}

// SplitDuration gives DragAndDrop independent durations for the
// move-to-source and move-to-target legs.
type SplitDuration struct {
	ToSource time.Duration
	ToTarget time.Duration
}

// AutoDuration defers timing entirely to the C4 model.
func AutoDuration() Duration { return Duration{Auto: true} }

// FixedDuration pins the whole movement to d.
func FixedDuration(d time.Duration) Duration { return Duration{Fixed: d} }

// SplitDurationOf gives the drag legs independent durations.
func SplitDurationOf(toSource, toTarget time.Duration) Duration {
	return Duration{Split: &SplitDuration{ToSource: toSource, ToTarget: toTarget}}
}

// RelPos is a fractional position within an element's bounding box, each
// axis in [0,1], used to pin a Target Element's click point explicitly.
type RelPos struct {
	X, Y float64
}

// Target is the tagged sum a caller points the cursor at (§4.7): an
// absolute screen point, a relative pixel offset (web sinks only), or an
// on-page element, optionally with a pinned relative click position.
type Target struct {
	kind   targetKind
	point  Point
	handle ElementHandle
	relPos *RelPos
}

type targetKind int

const (
	targetAbsolute targetKind = iota
	targetOffset
	targetElement
)

// AbsoluteTarget points at a fixed screen coordinate.
func AbsoluteTarget(p Point) Target { return Target{kind: targetAbsolute, point: p} }

// OffsetTarget points at a relative pixel offset from the sink's current
// position; only meaningful against a RelativeMover sink.
func OffsetTarget(dx, dy float64) Target {
	return Target{kind: targetOffset, point: Point{X: dx, Y: dy}}
}

// ElementTarget points at an on-page element. relPos may be nil, in which
// case the click point is sampled per §4.7.
func ElementTarget(handle ElementHandle, relPos *RelPos) Target {
	return Target{kind: targetElement, handle: handle, relPos: relPos}
}

var (
	busyMu    sync.Mutex
	busySinks = map[Sink]bool{}
)

// Cursor drives a Sink through humanized trajectories. Construct one with
// NewCursor; release it with Close when done.
type Cursor struct {
	sink    Sink
	rng     RNG
	session *sessionState
	steady  bool

	mu     sync.Mutex
	closed bool
}

// Option configures a Cursor at construction time.
type Option func(*Cursor)

// WithRNG injects a deterministic RNG, overriding the package default.
// Intended for tests.
func WithRNG(r RNG) Option {
	return func(c *Cursor) { c.rng = r }
}

// WithSteady starts the cursor in steady mode (§4.2): reduced curvature,
// fixed distortion preset, used for precise or repeated movement.
func WithSteady(steady bool) Option {
	return func(c *Cursor) { c.steady = steady }
}

// NewCursor registers sink for exclusive use by one Cursor instance and
// returns a ready-to-use engine. Overlapping registration returns
// ErrSinkBusy (best-effort, see SPEC_FULL.md §5).
func NewCursor(sink Sink, opts ...Option) (*Cursor, error) {
	if sink == nil {
		return nil, invalidArgument("sink", nil)
	}

	busyMu.Lock()
	if busySinks[sink] {
		busyMu.Unlock()
		return nil, ErrSinkBusy
	}
	busySinks[sink] = true
	busyMu.Unlock()

	c := &Cursor{
		sink:    sink,
		rng:     defaultRNG,
		session: newSessionState(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the sink registration. Safe to call more than once.
func (c *Cursor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	busyMu.Lock()
	delete(busySinks, c.sink)
	busyMu.Unlock()
	return nil
}

// resolveTarget turns a Target into a concrete destination point and an
// estimated target size in pixels, querying the sink/element as needed.
// The returned bool is "direct": true when the caller must bypass the
// humanized trajectory and move straight to the point (the element-bounds
// retry described in SPEC_FULL.md §7).
func (c *Cursor) resolveTarget(ctx context.Context, t Target) (Point, float64, bool, error) {
	switch t.kind {
	case targetAbsolute:
		return t.point, defaultTargetSize, false, nil

	case targetOffset:
		if _, ok := c.sink.(RelativeMover); !ok {
			return Point{}, 0, false, invalidArgument("target", "offset target requires a RelativeMover sink")
		}
		cur, err := c.sink.Position(ctx)
		if err != nil {
			return Point{}, 0, false, sinkUnavailable("position", nil, err)
		}
		return Point{X: cur.X + t.point.X, Y: cur.Y + t.point.Y}, defaultTargetSize, false, nil

	case targetElement:
		if t.handle == nil {
			return Point{}, 0, false, invalidArgument("target", "nil element handle")
		}
		x, y, w, h, err := t.handle.BoundingRect(ctx)
		if err != nil {
			return Point{}, 0, false, sinkUnavailable("boundingRect", nil, err)
		}

		var relX, relY float64
		if t.relPos != nil {
			if t.relPos.X < 0 || t.relPos.X > 1 || t.relPos.Y < 0 || t.relPos.Y > 1 {
				return Point{}, 0, false, invalidArgument("relPos", *t.relPos)
			}
			relX, relY = t.relPos.X, t.relPos.Y
		} else {
			area := w * h
			alpha := 2 + math.Min(area/10000, 3)
			relX = sampleBeta(c.rng, alpha, alpha)
			relY = sampleBeta(c.rng, alpha, alpha)
		}

		size := math.Min(w, h)
		point := Point{X: x + relX*w, Y: y + relY*h}

		// The sampled click point can land outside the page if the
		// element straddles the viewport edge. Retry once by moving
		// directly to the element's center instead of humanizing a
		// path toward an unreachable destination.
		if sw, sh, err := c.sink.ScreenSize(ctx); err == nil && sw > 0 && sh > 0 && !pointInBounds(point, sw, sh) {
			center := Point{X: x + w/2, Y: y + h/2}
			if !pointInBounds(center, sw, sh) {
				return Point{}, 0, false, outOfBounds("target", center)
			}
			return center, size, true, nil
		}

		return point, size, false, nil

	default:
		return Point{}, 0, false, invalidArgument("target", "unknown kind")
	}
}

func pointInBounds(p Point, w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}

// MoveTo computes a humanized trajectory to target and drives the sink
// through it, honoring duration and the cursor's steady setting.
func (c *Cursor) MoveTo(ctx context.Context, target Target, duration Duration) error {
	dest, targetSize, direct, err := c.resolveTarget(ctx, target)
	if err != nil {
		return err
	}

	origin, err := c.sink.Position(ctx)
	if err != nil {
		return sinkUnavailable("position", nil, err)
	}

	w, h, err := c.sink.ScreenSize(ctx)
	if err != nil {
		return sinkUnavailable("screenSize", nil, err)
	}
	if w <= 0 || h <= 0 {
		return sinkUnavailable("screenSize", [2]float64{w, h}, nil)
	}

	var points []Point
	if direct {
		points = []Point{origin, dest}
	} else {
		params := selectParams(c.rng, origin, dest, w, h, c.steady)
		points, err = buildTrajectory(c.rng, origin, dest, params, targetSize)
		if err != nil {
			return err
		}
	}

	dwell, err := c.resolveDuration(duration, distance(origin, dest), targetSize)
	if err != nil {
		return err
	}

	return execute(ctx, c.sink, points, dest, dwell)
}

func (c *Cursor) resolveDuration(d Duration, dist, targetSize float64) (time.Duration, error) {
	switch {
	case d.Fixed > 0:
		return d.Fixed, nil
	case d.Split != nil:
		return 0, invalidArgument("duration", "split duration is not valid for MoveTo")
	default:
		return fittsDuration(c.rng, c.session, dist, targetSize), nil
	}
}

// Click moves to point, then presses/holds/releases clicks times with
// humanized pre-click and inter-click pauses (§4.6).
func (c *Cursor) Click(ctx context.Context, target Target, clicks int, clickDuration time.Duration, duration Duration, btn Button) error {
	if clicks <= 0 {
		return invalidArgument("clicks", clicks)
	}
	if clickDuration < 0 {
		return invalidArgument("clickDuration", clickDuration)
	}

	if err := c.MoveTo(ctx, target, duration); err != nil {
		return err
	}

	if err := sleepCtx(ctx, time.Duration(uniform(c.rng, 0.050, 0.150)*float64(time.Second))); err != nil {
		return err
	}

	for i := 0; i < clicks; i++ {
		if err := c.sink.Press(ctx, btn); err != nil {
			return err
		}
		if err := sleepCtx(ctx, clickDuration); err != nil {
			return err
		}
		if err := c.sink.Release(ctx, btn); err != nil {
			return err
		}
		if i < clicks-1 {
			if err := sleepCtx(ctx, time.Duration(uniform(c.rng, 0.170, 0.280)*float64(time.Second))); err != nil {
				return err
			}
		}
	}
	return nil
}

// DragAndDrop moves to from, presses, moves to to, and releases, following
// the drag state machine in §4.5.
func (c *Cursor) DragAndDrop(ctx context.Context, from, to Target, duration Duration, btn Button) error {
	origin, err := c.sink.Position(ctx)
	if err != nil {
		return sinkUnavailable("position", nil, err)
	}

	destSource, sourceSize, sourceDirect, err := c.resolveTarget(ctx, from)
	if err != nil {
		return err
	}
	destTarget, targetSize, targetDirect, err := c.resolveTarget(ctx, to)
	if err != nil {
		return err
	}

	w, h, err := c.sink.ScreenSize(ctx)
	if err != nil {
		return sinkUnavailable("screenSize", nil, err)
	}
	if w <= 0 || h <= 0 {
		return sinkUnavailable("screenSize", [2]float64{w, h}, nil)
	}

	var sourcePoints []Point
	if sourceDirect {
		sourcePoints = []Point{origin, destSource}
	} else {
		toSourceParams := selectParams(c.rng, origin, destSource, w, h, c.steady)
		sourcePoints, err = buildTrajectory(c.rng, origin, destSource, toSourceParams, sourceSize)
		if err != nil {
			return err
		}
	}

	var targetPoints []Point
	if targetDirect {
		targetPoints = []Point{destSource, destTarget}
	} else {
		toTargetParams := selectParams(c.rng, destSource, destTarget, w, h, c.steady)
		targetPoints, err = buildTrajectory(c.rng, destSource, destTarget, toTargetParams, targetSize)
		if err != nil {
			return err
		}
	}

	toSourceDwell, toTargetDwell, err := c.resolveDragDurations(duration, distance(origin, destSource), distance(destSource, destTarget), sourceSize, targetSize)
	if err != nil {
		return err
	}

	return dragAndDrop(ctx, c.sink, sourcePoints, targetPoints, destSource, destTarget, toSourceDwell, toTargetDwell, btn, nil, nil)
}

func (c *Cursor) resolveDragDurations(d Duration, distSource, distTarget, sourceSize, targetSize float64) (time.Duration, time.Duration, error) {
	switch {
	case d.Split != nil:
		return d.Split.ToSource, d.Split.ToTarget, nil
	case d.Fixed > 0:
		return d.Fixed / 2, d.Fixed / 2, nil
	default:
		toSource := fittsDuration(c.rng, c.session, distSource, sourceSize)
		toTarget := fittsDuration(c.rng, c.session, distTarget, targetSize)
		return toSource, toTarget, nil
	}
}

// IdleJitter emits small random cursor movements to simulate a resting
// hand, stopping cleanly when ctx is done. intensity is clamped to
// [0.5, 2.0] and scales the per-axis jitter magnitude (§4.6).
func (c *Cursor) IdleJitter(ctx context.Context, duration time.Duration, intensity float64) error {
	if intensity < 0.5 {
		intensity = 0.5
	}
	if intensity > 2.0 {
		intensity = 2.0
	}

	const tick = 100 * time.Millisecond // 10 micro-movements per second
	deadline := time.Now().Add(duration)

	mover, relative := c.sink.(RelativeMover)

	for time.Now().Before(deadline) {
		dx := uniform(c.rng, -3*intensity, 3*intensity)
		dy := uniform(c.rng, -3*intensity, 3*intensity)

		var err error
		if relative {
			err = mover.MoveBy(ctx, dx, dy)
		} else {
			cur, posErr := c.sink.Position(ctx)
			if posErr != nil {
				return sinkUnavailable("position", nil, posErr)
			}
			err = c.sink.MoveTo(ctx, Point{X: cur.X + dx, Y: cur.Y + dy})
		}
		if err != nil {
			return err
		}

		if err := sleepCtx(ctx, tick); err != nil {
			return err
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
