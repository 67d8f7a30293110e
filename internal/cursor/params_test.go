package cursor

import "testing"

func TestEdgeProximityCenterIsZero(t *testing.T) {
	p := edgeProximity(Point{X: 500, Y: 500}, 1000, 1000)
	if p != 0 {
		t.Errorf("edgeProximity(center) = %v, want 0", p)
	}
}

func TestEdgeProximityCornerIsOne(t *testing.T) {
	p := edgeProximity(Point{X: 0, Y: 0}, 1000, 1000)
	if p < 0.99 {
		t.Errorf("edgeProximity(corner) = %v, want ~1", p)
	}
}

func TestEdgeProximityBounded(t *testing.T) {
	for _, pt := range []Point{{X: -50, Y: -50}, {X: 2000, Y: 2000}, {X: 500, Y: -10}} {
		p := edgeProximity(pt, 1000, 1000)
		if p < 0 || p > 1 {
			t.Errorf("edgeProximity(%v) = %v, want in [0,1]", pt, p)
		}
	}
}

func TestTargetPointsForCapped(t *testing.T) {
	if n := targetPointsFor(100000); n > 250 {
		t.Errorf("targetPointsFor(huge) = %d, want <= 250", n)
	}
	if n := targetPointsFor(100000); n < 2 {
		t.Errorf("targetPointsFor(huge) = %d, want >= 2", n)
	}
}

func TestTargetPointsForMonotoneRoughly(t *testing.T) {
	small := targetPointsFor(20)
	mid := targetPointsFor(300)
	large := targetPointsFor(2000)
	if !(small <= mid && mid <= large) {
		t.Errorf("targetPointsFor not roughly monotone: %d, %d, %d", small, mid, large)
	}
}

func TestSelectParamsSteadyOverridesCurvatureAndDistortion(t *testing.T) {
	r := defaultRNG
	origin := Point{X: 100, Y: 100}
	dest := Point{X: 900, Y: 900}

	params := selectParams(r, origin, dest, 1000, 1000, true)

	if params.OffsetBoundaryX != steadyOffsetBoundary || params.OffsetBoundaryY != steadyOffsetBoundary {
		t.Errorf("steady offsets = (%d,%d), want (%d,%d)", params.OffsetBoundaryX, params.OffsetBoundaryY, steadyOffsetBoundary, steadyOffsetBoundary)
	}
	if params.DistortionMean != steadyDistortionMean {
		t.Errorf("steady distortion mean = %v, want %v", params.DistortionMean, steadyDistortionMean)
	}
	if params.DistortionStdev != steadyDistortionStdev {
		t.Errorf("steady distortion stdev = %v, want %v", params.DistortionStdev, steadyDistortionStdev)
	}
	if params.DistortionFrequency != steadyDistortionFreq {
		t.Errorf("steady distortion freq = %v, want %v", params.DistortionFrequency, steadyDistortionFreq)
	}
}

func TestSelectParamsSteadyKeepsKnotsAndTargetPointsFromNormalPath(t *testing.T) {
	// Steady mode must not zero out knots/targetPoints/easing: those come
	// from the same computation as the non-steady path, post edge-damping.
	r := defaultRNG
	origin := Point{X: 500, Y: 500}
	dest := Point{X: 600, Y: 500}

	params := selectParams(r, origin, dest, 1000, 1000, true)
	if params.KnotsCount < 0 {
		t.Errorf("steady KnotsCount = %d, want >= 0", params.KnotsCount)
	}
	if params.TargetPoints < 2 {
		t.Errorf("steady TargetPoints = %d, want >= 2", params.TargetPoints)
	}
}

func TestSelectParamsEdgeDampingReducesOffsets(t *testing.T) {
	// With an identical draw sequence, an edge-hugging move should never
	// come out with a larger offset boundary than the same move centered
	// in the viewport, since damping only shrinks toward 0.
	newFixedRNG := func() RNG {
		return &seqRNG{
			floats: []float64{0.5, 0.3, 0.3, 0.9, 0.9, 0.4, 0.4, 0.4},
			ints:   []int{1, 1, 1},
		}
	}

	centered := selectParams(newFixedRNG(), Point{X: 500, Y: 500}, Point{X: 560, Y: 500}, 1000, 1000, false)
	edge := selectParams(newFixedRNG(), Point{X: 5, Y: 5}, Point{X: 65, Y: 5}, 1000, 1000, false)

	if edge.OffsetBoundaryX > centered.OffsetBoundaryX {
		t.Errorf("edge offsetX = %d, want <= centered offsetX = %d", edge.OffsetBoundaryX, centered.OffsetBoundaryX)
	}
}
