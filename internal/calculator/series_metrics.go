package calculator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

const tradingDaysPerYear = 252

type SeriesMetrics struct {
	MeanReturn      float64 `json:"meanReturn"`
	Stdev           float64 `json:"stdev"`
	AnnualizedStdev float64 `json:"annualizedStdev"`
	SharpeRatio     float64 `json:"sharpeRatio"`
}

// CalculateSeriesMetrics summarizes per-timestep returns, assuming
// one timestep per trading day. it needs at least 2 returns
func CalculateSeriesMetrics(returns []float64) (*SeriesMetrics, error) {
	if len(returns) < 2 {
		return nil, fmt.Errorf("cannot calculate metrics on < 2 returns")
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return nil, err
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}

	sharpeRatio := 0.0
	if stdev != 0 {
		sharpeRatio = mean / stdev * math.Sqrt(tradingDaysPerYear)
	}

	return &SeriesMetrics{
		MeanReturn:      mean,
		Stdev:           stdev,
		AnnualizedStdev: stdev * math.Sqrt(tradingDaysPerYear),
		SharpeRatio:     sharpeRatio,
	}, nil
}
