package cursor

import "math"

// buildTrajectory runs the full C3 pipeline: internal knots -> Bézier
// sampling -> distortion -> tweening -> overshoot -> pauses. It is a pure
// function of its inputs and the injected RNG.
func buildTrajectory(r RNG, origin, dest Point, params CurveParams, targetSize float64) ([]Point, error) {
	knots := generateInternalKnots(r, origin, dest, params.OffsetBoundaryX, params.OffsetBoundaryY, params.KnotsCount)

	control := make([]Point, 0, len(knots)+2)
	control = append(control, origin)
	control = append(control, knots...)
	control = append(control, dest)

	m := int(math.Max(math.Max(math.Abs(origin.X-dest.X), math.Abs(origin.Y-dest.Y)), 2))
	sampled := CalculatePointsInCurve(m, control)
	if len(sampled) == 0 {
		return nil, degenerateCurve()
	}

	distorted := distortPoints(r, sampled, params.DistortionStdev, params.DistortionFrequency)

	tweened := tweenPoints(r, distorted, origin, dest, easingFor(params.Easing), params.TargetPoints)
	if len(tweened) == 0 {
		return nil, degenerateCurve()
	}

	d := distance(origin, dest)
	tweened = injectOvershoot(r, tweened, origin, dest, d, targetSize)
	tweened = injectPauses(r, tweened, d)

	return tweened, nil
}

// generateInternalKnots implements §4.3(a): inflate the bounding box of
// (origin, dest) by the offset boundaries, wobble each edge independently
// by +-5%, then sample knotsCount interior points uniformly inside it.
func generateInternalKnots(r RNG, origin, dest Point, offsetX, offsetY, knotsCount int) []Point {
	if knotsCount < 0 {
		knotsCount = 0
	}

	left := math.Min(origin.X, dest.X) - float64(offsetX)
	right := math.Max(origin.X, dest.X) + float64(offsetX)
	down := math.Min(origin.Y, dest.Y) - float64(offsetY)
	up := math.Max(origin.Y, dest.Y) + float64(offsetY)

	const wobble = 0.05
	left *= 1 + uniform(r, -wobble, wobble)
	right *= 1 + uniform(r, -wobble, wobble)
	down *= 1 + uniform(r, -wobble, wobble)
	up *= 1 + uniform(r, -wobble, wobble)

	if left > right {
		left, right = right, left
	}
	if down > up {
		down, up = up, down
	}

	knots := make([]Point, knotsCount)
	for i := range knots {
		knots[i] = Point{
			X: uniform(r, left, right),
			Y: uniform(r, down, up),
		}
	}
	return knots
}

// distortPoints implements §4.3(c): velocity-scaled Gaussian noise applied
// to interior samples with probability distortionFrequency. Endpoints are
// preserved exactly. distortionMean is not used here: noise is always
// centered at 0.
func distortPoints(r RNG, points []Point, stdev, frequency float64) []Point {
	if len(points) < 3 {
		return append([]Point(nil), points...)
	}

	out := make([]Point, len(points))
	out[0] = points[0]
	for i := 1; i < len(points)-1; i++ {
		prev := points[i-1]
		p := points[i]
		v := distance(prev, p)
		velocityFactor := math.Min(1+v/50, 2.5)

		if r.Float64() < frequency {
			out[i] = Point{
				X: p.X + gaussian(r, 0, stdev*velocityFactor),
				Y: p.Y + gaussian(r, 0, stdev*velocityFactor),
			}
		} else {
			out[i] = p
		}
	}
	out[len(out)-1] = points[len(points)-1]
	return out
}

// tweenPoints implements §4.3(d): direction-aware exponent, easing, and a
// cubic jerk-minimization window over the first/last three indices.
func tweenPoints(r RNG, points []Point, origin, dest Point, easing Easing, targetPoints int) []Point {
	if targetPoints < 2 {
		targetPoints = 2
	}

	dx := dest.X - origin.X
	dy := dest.Y - origin.Y
	horizontalDominant := math.Abs(dx) > math.Abs(dy)

	res := make([]Point, targetPoints)
	last := len(points) - 1

	for i := 0; i < targetPoints; i++ {
		base := float64(i) / float64(targetPoints-1)

		var exponent float64
		if horizontalDominant {
			exponent = 0.95
		} else {
			exponent = 1.05
		}

		p := easing(math.Pow(base, exponent))

		switch {
		case i < 3:
			smooth := math.Pow(float64(i)/3, 3)
			p *= smooth
		case i > targetPoints-4:
			remaining := float64(targetPoints-1-i) / 3
			smooth := math.Pow(remaining, 3)
			p = 1 - smooth*(1-p)
		}

		idx := int(p * float64(last))
		if idx < 0 {
			idx = 0
		}
		if idx > last {
			idx = last
		}
		res[i] = points[idx]
	}
	return res
}

// injectOvershoot implements §4.3(e). Overshoot probability grows with
// distance and shrinks with target size; when it fires, a point past the
// destination is inserted near the tail so the remaining points pull back
// toward it naturally.
func injectOvershoot(r RNG, points []Point, origin, dest Point, d, targetSize float64) []Point {
	distanceFactor := math.Min(d/1000, 1.0)
	targetFactor := math.Max(0, (50-targetSize)/50)
	prob := math.Min(0.4, (distanceFactor+targetFactor)/2)

	if r.Float64() >= prob {
		return points
	}

	factor := uniform(r, 1.03, 1.08)
	idx := int(float64(len(points)) * uniform(r, 0.80, 0.90))
	if idx < 0 {
		idx = 0
	}
	if idx > len(points) {
		idx = len(points)
	}

	overshoot := Point{
		X: origin.X + factor*(dest.X-origin.X),
		Y: origin.Y + factor*(dest.Y-origin.Y),
	}

	out := make([]Point, 0, len(points)+1)
	out = append(out, points[:idx]...)
	out = append(out, overshoot)
	out = append(out, points[idx:]...)
	return out
}

// injectPauses implements §4.3(f): duplicate 0-1 (d < 500) or 1-2 random
// interior points 2-4 times each to simulate brief hesitation, skipped for
// short or already-sparse trajectories.
func injectPauses(r RNG, points []Point, d float64) []Point {
	l := len(points)
	if d < 300 || l < 10 {
		return points
	}

	var numPauses int
	if d < 500 {
		numPauses = []int{0, 1}[r.Intn(2)]
	} else {
		numPauses = []int{1, 2}[r.Intn(2)]
	}
	if numPauses == 0 {
		return points
	}

	low := int(0.10 * float64(l))
	high := int(0.80 * float64(l))
	if high <= low {
		return points
	}

	indices := distinctIndices(r, low, high, numPauses)

	out := make([]Point, 0, l+numPauses*4)
	next := 0
	for _, idx := range indices {
		out = append(out, points[next:idx+1]...)
		reps := uniformInt(r, 2, 4)
		for i := 0; i < reps; i++ {
			out = append(out, points[idx])
		}
		next = idx + 1
	}
	out = append(out, points[next:]...)
	return out
}

// distinctIndices draws count distinct integers uniformly from [low, high)
// and returns them sorted ascending.
func distinctIndices(r RNG, low, high, count int) []int {
	span := high - low
	if count > span {
		count = span
	}
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		v := low + r.Intn(span)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	// simple insertion sort; count is at most 2
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
