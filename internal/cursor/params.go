package cursor

import "math"

// CurveParams is the value bundle produced by the parameter selector (C2)
// for a single movement. distortionMean is threaded through for
// compatibility but unused by the distortion step, which always centers
// noise at 0.
type CurveParams struct {
	OffsetBoundaryX, OffsetBoundaryY int
	KnotsCount                      int
	DistortionMean                  float64
	DistortionStdev                 float64
	DistortionFrequency             float64
	Easing                          EasingName
	TargetPoints                    int
}

// Steady-mode preset (§4.2): a fixed, reduced-curvature bundle used whenever
// the caller asks for precise or repeated movement.
const (
	steadyOffsetBoundary  = 10
	steadyDistortionMean  = 1.2
	steadyDistortionStdev = 1.2
	steadyDistortionFreq  = 1.0
)

var offsetBoundaryRanges = [][2]int{{20, 45}, {45, 75}, {75, 100}}
var offsetBoundaryWeights = []float64{0.20, 0.65, 0.15}

// selectParams implements the parameter selector described in SPEC_FULL.md
// §4.2: curvature boundaries, knot count, distortion, easing and sample
// count, all derived from the origin/destination distance and viewport
// edge proximity. steady replaces the offset boundaries and distortion
// fields with the fixed preset after edge damping; easing, knot count and
// sample count come from the normal computation.
func selectParams(r RNG, origin, dest Point, viewportW, viewportH float64, steady bool) CurveParams {
	d := distance(origin, dest)

	easing := randomEasing(r)

	offsetX := pickOffsetBoundary(r)
	offsetY := pickOffsetBoundary(r)

	knots := pickKnotsCount(r, d)

	distMean := math.Round(uniform(r, 0.80, 1.10)*100) / 100
	distStdev := math.Round(uniform(r, 0.85, 1.10)*100) / 100
	distFreq := math.Round(uniform(r, 0.25, 0.70)*100) / 100

	switch {
	case d < 30:
		distStdev *= 0.4
		distFreq *= 0.5
	case d < 75:
		distStdev *= 0.7
		distFreq *= 0.8
	}

	targetPoints := targetPointsFor(d)

	// Edge-proximity damping (§4.2 step 7).
	pOrigin := edgeProximity(origin, viewportW, viewportH)
	pDest := edgeProximity(dest, viewportW, viewportH)
	pMax := math.Max(pOrigin, pDest)

	offsetX = int(float64(offsetX) * (1 - 0.7*pMax))
	offsetY = int(float64(offsetY) * (1 - 0.7*pMax))
	knots = int(math.Max(1, math.Floor(float64(knots)*(1-0.5*pMax))))

	// Steady mode overrides curvature and distortion only, after edge
	// damping has already run, matching the original system_cursor.py
	// which calls the randomized selector unconditionally and overwrites
	// a subset of its fields for steady movement.
	if steady {
		offsetX = steadyOffsetBoundary
		offsetY = steadyOffsetBoundary
		distMean = steadyDistortionMean
		distStdev = steadyDistortionStdev
		distFreq = steadyDistortionFreq
	}

	return CurveParams{
		OffsetBoundaryX:     offsetX,
		OffsetBoundaryY:     offsetY,
		KnotsCount:          knots,
		DistortionMean:      distMean,
		DistortionStdev:     distStdev,
		DistortionFrequency: distFreq,
		Easing:              easing,
		TargetPoints:        targetPoints,
	}
}

func pickOffsetBoundary(r RNG) int {
	rng := offsetBoundaryRanges[weightedChoice(r, offsetBoundaryWeights)]
	return uniformInt(r, rng[0], rng[1])
}

// pickKnotsCount implements the distance-tiered draw with thresholds
// randomized per call (§4.2 step 4) to avoid a fixed, fingerprintable
// boundary.
func pickKnotsCount(r RNG, d float64) int {
	t1 := uniform(r, 80, 120)
	t2 := uniform(r, 400, 600)

	switch {
	case d < t1:
		options := []int{1, 2}
		weights := []float64{0.65, 0.35}
		return options[weightedChoice(r, weights)]
	case d < t2:
		options := []int{2, 3, 4}
		weights := []float64{0.45, 0.40, 0.15}
		return options[weightedChoice(r, weights)]
	default:
		options := []int{3, 4, 5, 6}
		weights := []float64{0.35, 0.40, 0.18, 0.07}
		return options[weightedChoice(r, weights)]
	}
}

// targetPointsFor implements the logarithmic-in-distance sample count
// (§4.2 step 6), capped at 250.
func targetPointsFor(d float64) int {
	var n float64
	switch {
	case d < 50:
		n = math.Max(math.Floor(0.3*d), 10)
	case d < 100:
		n = math.Max(math.Floor(0.5*d), 15)
	case d < 500:
		n = math.Floor(60 + 40*math.Log2(d/100))
	default:
		n = math.Floor(100 + 50*math.Log2(d/500))
	}
	if n > 250 {
		n = 250
	}
	if n < 2 {
		n = 2
	}
	return int(n)
}

// edgeProximity returns a scalar in [0,1], 0 at viewport center, 1 at an
// edge (§4.2 step 7).
func edgeProximity(p Point, w, h float64) float64 {
	xProx := math.Min(2*math.Min(p.X, w-p.X)/w, 1)
	yProx := math.Min(2*math.Min(p.Y, h-p.Y)/h, 1)
	prox := 1 - math.Min(xProx, yProx)
	return math.Max(0, math.Min(prox, 1))
}

func distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
