package cursor

import (
	"context"
	"time"
)

// execute drives sink through the sampled trajectory with uniform per-point
// dwell pacing, then issues a final absolute-position correction so the
// path always lands exactly on dest regardless of sampling error (§4.5
// step 1-2). When sink also implements RelativeMover, accumulated
// fractional-pixel residue is tracked across calls so truncation never
// compounds into visible drift (§4.5 step 3).
func execute(ctx context.Context, sink Sink, points []Point, dest Point, dwell time.Duration) error {
	if len(points) == 0 {
		return degenerateCurve()
	}

	mover, relative := sink.(RelativeMover)
	var residueX, residueY float64
	last := points[0]

	per := dwell
	if len(points) > 1 {
		per = dwell / time.Duration(len(points))
	}

	for i, p := range points {
		if err := ctx.Err(); err != nil {
			return err
		}

		if relative {
			dx := p.X - last.X + residueX
			dy := p.Y - last.Y + residueY
			idx, idy := truncate(dx), truncate(dy)
			residueX = dx - idx
			residueY = dy - idy
			if idx != 0 || idy != 0 {
				if err := mover.MoveBy(ctx, idx, idy); err != nil {
					return err
				}
			}
		} else {
			if err := sink.MoveTo(ctx, p); err != nil {
				return err
			}
		}
		last = p

		if i < len(points)-1 && per > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(per):
			}
		}
	}

	// Final correction: guarantee we land exactly on dest.
	if relative {
		dx := dest.X - last.X + residueX
		dy := dest.Y - last.Y + residueY
		idx, idy := truncate(dx), truncate(dy)
		if idx != 0 || idy != 0 {
			if err := mover.MoveBy(ctx, idx, idy); err != nil {
				return err
			}
		}
		return nil
	}
	return sink.MoveTo(ctx, dest)
}

// truncate rounds toward zero, the same convention used when a relative
// sink accepts only integer pixel deltas.
func truncate(v float64) float64 {
	return float64(int64(v))
}

// dragState enumerates the drag-and-drop state machine (§4.5 step 4):
// idle -> movedToSource -> pressed -> movedToTarget -> released -> idle.
// onState, when non-nil, is notified of each transition (used by tests to
// assert ordering without exposing the type publicly).
type dragState int

const (
	dragIdle dragState = iota
	dragMovedToSource
	dragPressed
	dragMovedToTarget
	dragReleased
)

// pressSettleDelay is the synchronous pause after pressing the button and
// before the drag motion starts, giving the sink's event handlers time to
// register the press (mirrors the teacher's fixed post-click settle delay
// in internal/stealth/timing.go).
const pressSettleDelay = 50 * time.Millisecond

// dragAndDrop implements the press-move-release sequence described in
// §4.5 step 4, driving the same trajectory builder and executor used for
// a plain move on each leg. The source leg is executed first, then the
// button is pressed and held for pressSettleDelay, then the target leg
// runs, then the button is released.
func dragAndDrop(ctx context.Context, sink Sink, source, target []Point, destSource, destTarget Point, sourceDwell, targetDwell time.Duration, btn Button, sleep func(time.Duration), onState func(dragState)) error {
	notify := func(s dragState) {
		if onState != nil {
			onState(s)
		}
	}

	if err := execute(ctx, sink, source, destSource, sourceDwell); err != nil {
		return err
	}
	notify(dragMovedToSource)

	if err := sink.Press(ctx, btn); err != nil {
		return err
	}
	notify(dragPressed)

	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(pressSettleDelay)

	if err := execute(ctx, sink, target, destTarget, targetDwell); err != nil {
		_ = sink.Release(ctx, btn)
		return err
	}
	notify(dragMovedToTarget)

	if err := sink.Release(ctx, btn); err != nil {
		return err
	}
	notify(dragReleased)

	return nil
}
