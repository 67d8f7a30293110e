package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"humancursor/internal/cursor"
)

// PageSink adapts a rod.Page's mouse into cursor.Sink and
// cursor.RelativeMover, the web path described in SPEC_FULL.md §6. It
// tracks the last position it moved to since rod does not expose a
// absolute-position query for the synthetic pointer.
type PageSink struct {
	page *rod.Page
	x, y float64
}

// NewPageSink wraps page for use by a cursor.Cursor. The pointer starts at
// (0,0) until the first MoveTo.
func NewPageSink(page *rod.Page) *PageSink {
	return &PageSink{page: page}
}

func buttonOf(b cursor.Button) proto.InputMouseButton {
	switch b {
	case cursor.ButtonRight:
		return proto.InputMouseButtonRight
	case cursor.ButtonMiddle:
		return proto.InputMouseButtonMiddle
	default:
		return proto.InputMouseButtonLeft
	}
}

// ScreenSize returns the page's viewport dimensions.
func (s *PageSink) ScreenSize(ctx context.Context) (float64, float64, error) {
	metrics, err := proto.PageGetLayoutMetrics{}.Call(s.page.Context(ctx))
	if err != nil {
		return 0, 0, fmt.Errorf("get layout metrics: %w", err)
	}
	return metrics.CSSLayoutViewport.ClientWidth, metrics.CSSLayoutViewport.ClientHeight, nil
}

// Position returns the last point this sink moved the pointer to.
func (s *PageSink) Position(ctx context.Context) (cursor.Point, error) {
	return cursor.Point{X: s.x, Y: s.y}, nil
}

// MoveTo dispatches an absolute mouse-move event.
func (s *PageSink) MoveTo(ctx context.Context, p cursor.Point) error {
	if err := s.page.Context(ctx).Mouse.MoveTo(proto.Point{X: p.X, Y: p.Y}); err != nil {
		return fmt.Errorf("move mouse: %w", err)
	}
	s.x, s.y = p.X, p.Y
	return nil
}

// MoveBy dispatches a relative mouse-move event, satisfying RelativeMover.
func (s *PageSink) MoveBy(ctx context.Context, dx, dy float64) error {
	return s.MoveTo(ctx, cursor.Point{X: s.x + dx, Y: s.y + dy})
}

// Press depresses btn at the current pointer location.
func (s *PageSink) Press(ctx context.Context, btn cursor.Button) error {
	return s.page.Context(ctx).Mouse.Down(buttonOf(btn), 1)
}

// Release releases btn at the current pointer location.
func (s *PageSink) Release(ctx context.Context, btn cursor.Button) error {
	return s.page.Context(ctx).Mouse.Up(buttonOf(btn), 1)
}

// RodElement wraps a rod.Element so it satisfies cursor.ElementHandle.
type RodElement struct {
	el *rod.Element
}

// NewRodElement wraps el for use as a cursor.Target via cursor.ElementTarget.
func NewRodElement(el *rod.Element) *RodElement {
	return &RodElement{el: el}
}

// BoundingRect scrolls el smoothly into view via the page's script escape
// hatch, then returns its box in viewport coordinates via its shape quad,
// the same geometry the teacher's MoveToElement reads from Shape(). The
// scroll mirrors the original's unconditional scroll_into_view_of_element
// before any element-relative move: Shape() reports stale coordinates for
// an element that hasn't settled into its post-scroll position yet.
func (e *RodElement) BoundingRect(ctx context.Context) (float64, float64, float64, float64, error) {
	el := e.el.Context(ctx)
	if _, err := el.Eval(`() => this.scrollIntoView({behavior: "smooth", block: "center", inline: "center"})`); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("scroll into view: %w", err)
	}
	if err := el.WaitStable(150 * time.Millisecond); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("wait for scroll to settle: %w", err)
	}

	box, err := el.Shape()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("get element shape: %w", err)
	}
	if len(box.Quads) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("element has no visible quads")
	}

	quad := box.Quads[0]
	minX, maxX := quad[0], quad[0]
	minY, maxY := quad[1], quad[1]
	for i := 0; i < 4; i++ {
		x, y := quad[i*2], quad[i*2+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	return minX, minY, maxX - minX, maxY - minY, nil
}
