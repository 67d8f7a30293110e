package cursor

import (
	"math"
	"sync"
)

// Point is an ordered pair of real-valued screen coordinates.
type Point struct {
	X, Y float64
}

// binomialCache caches C(n,k) across evaluations, keyed by (n,k), the way
// the original BezierCalculator caches its Pascal-triangle results.
var (
	binomialMu    sync.Mutex
	binomialCache = map[[2]int]int64{}
)

// binomial returns "n choose k" using the symmetric Pascal recurrence
// C(n,k) = C(n,k-1) * (n-k+1) / k, cached across calls.
func binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	k = min(k, n-k)

	key := [2]int{n, k}
	binomialMu.Lock()
	if v, ok := binomialCache[key]; ok {
		binomialMu.Unlock()
		return v
	}
	binomialMu.Unlock()

	var result int64 = 1
	for i := 0; i < k; i++ {
		result = result * int64(n-i) / int64(i+1)
	}

	binomialMu.Lock()
	binomialCache[key] = result
	binomialMu.Unlock()
	return result
}

// bernsteinPoint evaluates the i-th Bernstein basis polynomial of degree n
// at x, bypassing math.Pow for the small exponents that dominate real calls.
func bernsteinPoint(x float64, i, n int, coeff int64) float64 {
	var xPow float64
	switch i {
	case 0:
		xPow = 1
	case 1:
		xPow = x
	default:
		xPow = math.Pow(x, float64(i))
	}

	var oneMinusXPow float64
	switch n - i {
	case 0:
		oneMinusXPow = 1
	case 1:
		oneMinusXPow = 1 - x
	default:
		oneMinusXPow = math.Pow(1-x, float64(n-i))
	}

	return float64(coeff) * xPow * oneMinusXPow
}

// bernsteinPolynomial returns a function B(t) = sum_i C(n,i) t^i (1-t)^(n-i) Pi
// closing over precomputed binomial coefficients for the given control
// points, exactly as the original's bernstein_polynomial closes over them.
func bernsteinPolynomial(points []Point) func(t float64) Point {
	n := len(points) - 1
	coeffs := make([]int64, n+1)
	for i := range coeffs {
		coeffs[i] = binomial(n, i)
	}

	return func(t float64) Point {
		var x, y float64
		for i, p := range points {
			b := bernsteinPoint(t, i, n, coeffs[i])
			x += p.X * b
			y += p.Y * b
		}
		return Point{X: x, Y: y}
	}
}

// CalculatePointsInCurve returns m samples of the Bézier curve described by
// points, with t_k = k/(m-1). For m < 2 it returns the raw control points
// truncated to m, matching the original's edge-case behavior.
func CalculatePointsInCurve(m int, points []Point) []Point {
	if m < 2 {
		if m < 0 {
			m = 0
		}
		if m > len(points) {
			m = len(points)
		}
		return append([]Point(nil), points[:m]...)
	}

	curve := make([]Point, m)
	eval := bernsteinPolynomial(points)
	for i := 0; i < m; i++ {
		t := float64(i) / float64(m-1)
		curve[i] = eval(t)
	}
	return curve
}
