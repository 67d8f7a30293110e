package cursor

import "context"

// Button identifies which pointer button a click or drag uses.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Sink is the external collaborator a Cursor drives: something that can
// report its bounds and accept absolute pointer moves/presses/releases.
// Concrete sinks live in internal/browser (go-rod) and any future native
// input adapter.
type Sink interface {
	// ScreenSize returns the sink's addressable width and height. An error
	// here is wrapped as KindSinkUnavailable by the caller.
	ScreenSize(ctx context.Context) (width, height float64, err error)

	// Position returns the sink's current pointer location.
	Position(ctx context.Context) (Point, error)

	// MoveTo places the pointer at an absolute point.
	MoveTo(ctx context.Context, p Point) error

	// Press depresses button at the pointer's current location.
	Press(ctx context.Context, btn Button) error

	// Release releases button at the pointer's current location.
	Release(ctx context.Context, btn Button) error
}

// RelativeMover is an optional capability a Sink may also implement when it
// can only report pointer motion as deltas (common for web pages driven
// through synthetic DOM events rather than OS-level cursor placement). The
// executor (C5) accumulates fractional-pixel residue across calls to this
// method so integer truncation never causes cumulative drift.
type RelativeMover interface {
	MoveBy(ctx context.Context, dx, dy float64) error
}

// ElementHandle describes a concrete on-page target for Target Element
// selections (§4.7): its bounding rectangle in the sink's coordinate space.
type ElementHandle interface {
	BoundingRect(ctx context.Context) (x, y, width, height float64, err error)
}
