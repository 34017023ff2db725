package benchmark

import (
	"fmt"
	"math"
	"slices"
)

// InsufficientSamplesError is returned when statistics are requested for an empty series.
type InsufficientSamplesError struct {
	Model string
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("no timing samples recorded for %s: repeats must be at least 1", e.Model)
}

// runningStat accumulates mean and variance with Welford's online algorithm.
type runningStat struct {
	Count int
	Mean  float64
	M2    float64
}

func (rs *runningStat) add(value float64) {
	rs.Count++
	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}

func (rs runningStat) stdDev() float64 {
	if rs.Count == 0 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count))
}

// Aggregate sorts a copy of series and reduces it to a Result. The labels
// policy decides whether Min holds the smallest or the largest sample.
func Aggregate(model string, series TimingSeries, labels LabelPolicy) (Result, error) {
	if len(series) == 0 {
		return Result{}, &InsufficientSamplesError{Model: model}
	}

	sorted := slices.Clone(series)
	slices.Sort(sorted)

	var total float64
	var rs runningStat
	for _, v := range sorted {
		total += v
		rs.add(v)
	}

	smallest, largest := sorted[0], sorted[len(sorted)-1]
	result := Result{
		ModelName: model,
		Min:       smallest,
		Max:       largest,
		Average:   total / float64(len(sorted)),
		Median:    median(sorted),
		StdDev:    rs.stdDev(),
		Samples:   len(sorted),
		Labels:    labels.String(),
		Timings:   sorted,
	}
	if labels == LabelsLegacySwapped {
		result.Min, result.Max = largest, smallest
	}
	return result, nil
}

// median expects sorted input.
func median(sorted TimingSeries) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
