package cursor

import "testing"

// seqRNG replays a fixed sequence of float values, cycling, so tests can
// pin down exactly which branch a probabilistic function takes.
type seqRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *seqRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *seqRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	if v >= n {
		v = n - 1
	}
	return v
}

func TestUniformRange(t *testing.T) {
	r := &seqRNG{floats: []float64{0, 0.5, 0.999999}}
	if got := uniform(r, 10, 20); got != 10 {
		t.Errorf("uniform at 0 = %v, want 10", got)
	}
	if got := uniform(r, 10, 20); got != 15 {
		t.Errorf("uniform at 0.5 = %v, want 15", got)
	}
}

func TestUniformDegenerate(t *testing.T) {
	r := &seqRNG{floats: []float64{0.7}}
	if got := uniform(r, 5, 5); got != 5 {
		t.Errorf("uniform(lo==hi) = %v, want 5", got)
	}
	if got := uniform(r, 5, 1); got != 5 {
		t.Errorf("uniform(hi<lo) = %v, want lo=5", got)
	}
}

func TestWeightedChoiceDegenerate(t *testing.T) {
	r := &seqRNG{floats: []float64{0.9}}
	if got := weightedChoice(r, []float64{0, 0, 0}); got != 0 {
		t.Errorf("weightedChoice with zero weights = %d, want 0", got)
	}
}

func TestWeightedChoicePicksHighWeightOften(t *testing.T) {
	r := defaultRNG
	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		counts[weightedChoice(r, []float64{0.05, 0.90, 0.05})]++
	}
	if counts[1] < 1500 {
		t.Errorf("expected index 1 to dominate, got counts=%v", counts)
	}
}

func TestSampleBetaInUnitRange(t *testing.T) {
	r := defaultRNG
	for i := 0; i < 500; i++ {
		v := sampleBeta(r, 2.5, 2.5)
		if v < 0 || v > 1 {
			t.Fatalf("sampleBeta out of range: %v", v)
		}
	}
}

func TestSampleBetaSymmetricMean(t *testing.T) {
	r := defaultRNG
	sum := 0.0
	const n = 4000
	for i := 0; i < n; i++ {
		sum += sampleBeta(r, 4, 4)
	}
	mean := sum / n
	if mean < 0.45 || mean > 0.55 {
		t.Errorf("symmetric beta mean = %v, want close to 0.5", mean)
	}
}

func TestGaussianMeanAndSpread(t *testing.T) {
	r := defaultRNG
	sum := 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		sum += gaussian(r, 10, 2)
	}
	mean := sum / n
	if mean < 9.5 || mean > 10.5 {
		t.Errorf("gaussian mean = %v, want close to 10", mean)
	}
}
