package cursor

import "testing"

func defaultTestParams() CurveParams {
	return CurveParams{
		OffsetBoundaryX:     40,
		OffsetBoundaryY:     40,
		KnotsCount:          2,
		DistortionMean:      1.0,
		DistortionStdev:     1.0,
		DistortionFrequency: 0.5,
		Easing:              EaseOutCubic,
		TargetPoints:        40,
	}
}

func TestBuildTrajectoryPreservesEndpoints(t *testing.T) {
	r := defaultRNG
	origin := Point{X: 100, Y: 100}
	dest := Point{X: 700, Y: 400}

	points, err := buildTrajectory(r, origin, dest, defaultTestParams(), 12)
	if err != nil {
		t.Fatalf("buildTrajectory: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("buildTrajectory returned no points")
	}
	if points[0] != origin {
		t.Errorf("first point = %v, want origin %v", points[0], origin)
	}
	last := points[len(points)-1]
	if last != dest {
		t.Errorf("last point = %v, want dest %v", last, dest)
	}
}

func TestBuildTrajectoryDegenerateSamePoint(t *testing.T) {
	r := defaultRNG
	p := Point{X: 50, Y: 50}
	points, err := buildTrajectory(r, p, p, defaultTestParams(), 12)
	if err != nil {
		t.Fatalf("buildTrajectory same-point: %v", err)
	}
	if points[0] != p || points[len(points)-1] != p {
		t.Errorf("same-point trajectory endpoints drifted: %v", points)
	}
}

func TestDistortPointsPreservesEndpoints(t *testing.T) {
	r := defaultRNG
	pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 10}, {X: 30, Y: 0}}
	out := distortPoints(r, pts, 5, 1.0)
	if out[0] != pts[0] {
		t.Errorf("distortPoints changed first point: %v -> %v", pts[0], out[0])
	}
	if out[len(out)-1] != pts[len(pts)-1] {
		t.Errorf("distortPoints changed last point: %v -> %v", pts[len(pts)-1], out[len(out)-1])
	}
}

func TestDistortPointsShortInputUnchanged(t *testing.T) {
	pts := []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	out := distortPoints(defaultRNG, pts, 5, 1.0)
	if len(out) != len(pts) || out[0] != pts[0] || out[1] != pts[1] {
		t.Errorf("distortPoints(len<3) = %v, want unchanged %v", out, pts)
	}
}

func TestTweenPointsLengthMatchesTargetPoints(t *testing.T) {
	pts := CalculatePointsInCurve(100, []Point{{X: 0, Y: 0}, {X: 50, Y: 80}, {X: 100, Y: 0}})
	out := tweenPoints(defaultRNG, pts, Point{X: 0, Y: 0}, Point{X: 100, Y: 0}, easingFor(Linear), 30)
	if len(out) != 30 {
		t.Fatalf("len(tweenPoints) = %d, want 30", len(out))
	}
}

func TestTweenPointsClampsTargetPointsFloor(t *testing.T) {
	pts := CalculatePointsInCurve(10, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	out := tweenPoints(defaultRNG, pts, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, easingFor(Linear), 1)
	if len(out) != 2 {
		t.Errorf("len(tweenPoints) with targetPoints=1 = %d, want 2 (floor)", len(out))
	}
}

func TestInjectPausesSkipsShortMoves(t *testing.T) {
	pts := make([]Point, 20)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: 0}
	}
	out := injectPauses(defaultRNG, pts, 100)
	if len(out) != len(pts) {
		t.Errorf("injectPauses(d=100) changed length from %d to %d, want skip for d<300", len(pts), len(out))
	}
}

func TestInjectPausesSkipsSparseTrajectories(t *testing.T) {
	pts := make([]Point, 5)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: 0}
	}
	out := injectPauses(defaultRNG, pts, 1000)
	if len(out) != len(pts) {
		t.Errorf("injectPauses(len<10) changed length from %d to %d, want skip", len(pts), len(out))
	}
}

func TestInjectPausesCanGrowLongTrajectories(t *testing.T) {
	pts := make([]Point, 50)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: 0}
	}
	grew := false
	for i := 0; i < 50; i++ {
		out := injectPauses(defaultRNG, pts, 600)
		if len(out) > len(pts) {
			grew = true
			break
		}
	}
	if !grew {
		t.Error("injectPauses never grew a long trajectory across 50 attempts")
	}
}

func TestDistinctIndicesAreDistinctAndSorted(t *testing.T) {
	r := defaultRNG
	idx := distinctIndices(r, 5, 40, 2)
	if len(idx) != 2 {
		t.Fatalf("len(idx) = %d, want 2", len(idx))
	}
	if idx[0] == idx[1] {
		t.Errorf("distinctIndices returned duplicate: %v", idx)
	}
	if idx[0] > idx[1] {
		t.Errorf("distinctIndices not sorted: %v", idx)
	}
	for _, v := range idx {
		if v < 5 || v >= 40 {
			t.Errorf("index %d out of range [5,40)", v)
		}
	}
}

func TestInjectOvershootPreservesOrderWhenItFires(t *testing.T) {
	// A forced-fire RNG (first Float64 draw is 0) should insert exactly one
	// extra point without disturbing the relative order of the rest.
	r := &seqRNG{floats: []float64{0, 0.85, 0.05}}
	pts := make([]Point, 20)
	for i := range pts {
		pts[i] = Point{X: float64(i) * 10, Y: 0}
	}
	out := injectOvershoot(r, pts, Point{X: 0, Y: 0}, Point{X: 190, Y: 0}, 900, 10)
	if len(out) != len(pts)+1 {
		t.Fatalf("len(out) = %d, want %d", len(out), len(pts)+1)
	}
	// The third draw (0.05) puts the overshoot at int(20*0.805) = 16.
	rest := append(append([]Point(nil), out[:16]...), out[17:]...)
	for i := range pts {
		if rest[i] != pts[i] {
			t.Errorf("point %d = %v after overshoot removal, want %v", i, rest[i], pts[i])
		}
	}
}
