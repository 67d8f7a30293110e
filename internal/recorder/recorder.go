// Package recorder captures a cursor session as a replayable list of items
// and serializes it for persistence. It sits outside the trajectory engine
// proper: the engine produces and consumes points, the recorder only
// observes the high-level operations a Cursor was asked to perform.
package recorder

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"humancursor/internal/cursor"
)

// ItemKind discriminates the tagged union stored in an Item.
type ItemKind int

const (
	KindMove ItemKind = iota
	KindClick
	KindDrag
)

// Item is one recorded operation. Only the fields relevant to Kind are
// populated; this mirrors the Move/Click/Drag tagged sum from
// SPEC_FULL.md §3 in a gob-friendly flat struct.
type Item struct {
	Kind ItemKind

	// Move, Click
	X, Y int

	// Click
	Clicks int

	// Drag
	FromX, FromY int
	ToX, ToY     int
}

// Move records a completed MoveTo at integer destination coordinates.
func Move(x, y int) Item { return Item{Kind: KindMove, X: x, Y: y} }

// Click records a completed Click at integer coordinates.
func Click(x, y, clicks int) Item { return Item{Kind: KindClick, X: x, Y: y, Clicks: clicks} }

// Drag records a completed DragAndDrop between two integer coordinates.
func Drag(fromX, fromY, toX, toY int) Item {
	return Item{Kind: KindDrag, FromX: fromX, FromY: fromY, ToX: toX, ToY: toY}
}

// Recorder accumulates Items for one session, guarded for concurrent use
// since IdleJitter and MoveTo may run from different goroutines in a
// caller's demo harness.
type Recorder struct {
	mu    sync.Mutex
	items []Item
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Record appends item to the session.
func (r *Recorder) Record(item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

// RecordMoveTo is a convenience wrapper that rounds a cursor.Point to
// integer pixel coordinates before recording it.
func (r *Recorder) RecordMoveTo(p cursor.Point) {
	r.Record(Move(int(p.X+0.5), int(p.Y+0.5)))
}

// Items returns a snapshot of the recorded items in order.
func (r *Recorder) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Serialize encodes items as a self-describing gob blob.
func Serialize(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(items); err != nil {
		return nil, fmt.Errorf("encode recording: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a blob produced by Serialize.
func Deserialize(data []byte) ([]Item, error) {
	var items []Item
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	return items, nil
}
