package stats

import (
	mstats "github.com/montanaflynn/stats"
)

// Range returns the minimum and maximum of xs.
func Range(xs []float64) (min, max float64, err error) {
	min, err = mstats.Min(xs)
	if err != nil {
		return 0, 0, err
	}
	max, err = mstats.Max(xs)
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// Summary holds the scalar description of one variable. StdDev is the
// population standard deviation.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes min, max, mean and population standard deviation.
func Summarize(xs []float64) (Summary, error) {
	var s Summary
	var err error
	if s.Min, s.Max, err = Range(xs); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = mstats.Mean(xs); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = mstats.StandardDeviationPopulation(xs); err != nil {
		return Summary{}, err
	}
	return s, nil
}
