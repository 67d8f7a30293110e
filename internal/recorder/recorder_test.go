package recorder

import (
	"reflect"
	"testing"

	"humancursor/internal/cursor"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	items := []Item{
		Move(10, 20),
		Click(10, 20, 2),
		Drag(0, 0, 100, 150),
	}

	blob, err := Serialize(items)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(items, got) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, items)
	}
}

func TestSerializeDeserializeEmpty(t *testing.T) {
	blob, err := Serialize(nil)
	if err != nil {
		t.Fatalf("Serialize(nil): %v", err)
	}
	got, err := Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Deserialize(Serialize(nil)) = %v, want empty", got)
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	if _, err := Deserialize([]byte("not a gob stream")); err == nil {
		t.Error("Deserialize on garbage input should fail")
	}
}

func TestRecorderRecordAndItemsSnapshot(t *testing.T) {
	r := New()
	r.Record(Move(1, 2))
	r.Record(Click(1, 2, 1))

	snap := r.Items()
	if len(snap) != 2 {
		t.Fatalf("len(Items()) = %d, want 2", len(snap))
	}

	// Mutating the snapshot must not affect the recorder's internal state.
	snap[0] = Move(999, 999)
	fresh := r.Items()
	if fresh[0] != (Item{Kind: KindMove, X: 1, Y: 2}) {
		t.Errorf("recorder state mutated via snapshot: %+v", fresh[0])
	}
}

func TestRecordMoveToRoundsToNearestPixel(t *testing.T) {
	r := New()
	r.RecordMoveTo(cursor.Point{X: 10.6, Y: 3.2})
	got := r.Items()[0]
	want := Item{Kind: KindMove, X: 11, Y: 3}
	if got != want {
		t.Errorf("RecordMoveTo(10.6,3.2) recorded %+v, want %+v", got, want)
	}
}
