package series

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// TimeSeries is an ordered sequence of (timepoint, value) observations for one
// gene. Timepoints need not be evenly spaced but are sorted and unique after
// Normalize; fitting code assumes a normalized series.
type TimeSeries struct {
	Timepoints []float64
	Values     []float64
}

// Summary holds descriptive statistics for a series.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// New creates a normalized time series from parallel timepoint/value slices.
// Panics on mismatched lengths - that is a caller contract violation, not a
// data edge case.
func New(timepoints, values []float64) TimeSeries {
	if len(timepoints) != len(values) {
		panic("series: timepoints and values must have equal length")
	}
	ts := TimeSeries{
		Timepoints: append([]float64(nil), timepoints...),
		Values:     append([]float64(nil), values...),
	}
	ts.normalize()
	return ts
}

// FromValues creates a series with implicit unit-spaced timepoints 0..n-1.
func FromValues(values []float64) TimeSeries {
	tp := make([]float64, len(values))
	for i := range tp {
		tp[i] = float64(i)
	}
	return TimeSeries{Timepoints: tp, Values: append([]float64(nil), values...)}
}

// normalize sorts by timepoint and drops duplicate timepoints, keeping the
// first occurrence.
func (ts *TimeSeries) normalize() {
	n := len(ts.Timepoints)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ts.Timepoints[idx[a]] < ts.Timepoints[idx[b]]
	})

	tp := make([]float64, 0, n)
	vals := make([]float64, 0, n)
	for _, i := range idx {
		if len(tp) > 0 && ts.Timepoints[i] == tp[len(tp)-1] {
			continue
		}
		tp = append(tp, ts.Timepoints[i])
		vals = append(vals, ts.Values[i])
	}
	ts.Timepoints = tp
	ts.Values = vals
}

// Len returns the number of observations.
func (ts TimeSeries) Len() int {
	return len(ts.Values)
}

// Span returns the time covered by the series.
func (ts TimeSeries) Span() float64 {
	if len(ts.Timepoints) < 2 {
		return 0
	}
	return ts.Timepoints[len(ts.Timepoints)-1] - ts.Timepoints[0]
}

// SamplingInterval returns the median spacing between consecutive timepoints,
// or 1 when the series is too short to tell.
func (ts TimeSeries) SamplingInterval() float64 {
	if len(ts.Timepoints) < 2 {
		return 1
	}
	gaps := make([]float64, len(ts.Timepoints)-1)
	for i := 1; i < len(ts.Timepoints); i++ {
		gaps[i-1] = ts.Timepoints[i] - ts.Timepoints[i-1]
	}
	med, err := stats.Median(gaps)
	if err != nil || med <= 0 {
		return 1
	}
	return med
}

// Summarize computes descriptive statistics for the series values.
func (ts TimeSeries) Summarize() Summary {
	if len(ts.Values) == 0 {
		return Summary{}
	}
	mean, _ := stats.Mean(ts.Values)
	sd, _ := stats.StandardDeviationSample(ts.Values)
	min, _ := stats.Min(ts.Values)
	max, _ := stats.Max(ts.Values)
	median, _ := stats.Median(ts.Values)
	return Summary{Mean: mean, StdDev: sd, Min: min, Max: max, Median: median}
}

// NearConstant reports whether the series has near-zero sample variance.
// Such series get degenerate results from every downstream test.
func (ts TimeSeries) NearConstant() bool {
	if len(ts.Values) < 2 {
		return true
	}
	mean, _ := stats.Mean(ts.Values)
	sumSq := 0.0
	for _, v := range ts.Values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq/float64(len(ts.Values)-1) < 1e-12
}

// Finite reports whether every value in the series is a finite number.
func (ts TimeSeries) Finite() bool {
	for _, v := range ts.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
