package wolfsheep

import "math"

// Sample is the population reading taken after each tick.
type Sample struct {
	Step   int
	Sheep  int
	Wolves int
	// Grass counts fully grown patches.
	Grass int
}

// Sink receives one Sample per tick.
type Sink interface {
	Record(Sample)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Sample)

// Record calls f(s).
func (f SinkFunc) Record(s Sample) { f(s) }

// Series collects samples in memory. A positive Limit keeps only the most
// recent Limit samples.
type Series struct {
	Limit   int
	samples []Sample
}

// Record appends s, evicting the oldest sample when over Limit.
func (s *Series) Record(sample Sample) {
	s.samples = append(s.samples, sample)
	if s.Limit > 0 && len(s.samples) > s.Limit {
		s.samples = s.samples[len(s.samples)-s.Limit:]
	}
}

// Len returns the number of retained samples.
func (s *Series) Len() int { return len(s.samples) }

// Samples returns the retained samples. Callers must not modify the result.
func (s *Series) Samples() []Sample { return s.samples }

// Reset drops all samples.
func (s *Series) Reset() { s.samples = s.samples[:0] }

// Sheep returns the sheep counts in sample order.
func (s *Series) Sheep() []int { return s.column(func(x Sample) int { return x.Sheep }) }

// Wolves returns the wolf counts in sample order.
func (s *Series) Wolves() []int { return s.column(func(x Sample) int { return x.Wolves }) }

// Grass returns the fully grown grass counts in sample order.
func (s *Series) Grass() []int { return s.column(func(x Sample) int { return x.Grass }) }

func (s *Series) column(get func(Sample) int) []int {
	out := make([]int, len(s.samples))
	for i, x := range s.samples {
		out[i] = get(x)
	}
	return out
}

// StdDev returns the sample standard deviation (n-1 denominator). It is 0 for
// fewer than two values.
func StdDev(values []int) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range values {
		d := float64(v) - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
