package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BaselineReport holds both baselines for one return matrix,
// and optionally how a strategy did between them
type BaselineReport struct {
	DailyInvestment float64 `json:"dailyInvestment"`
	SkipSteps       int     `json:"skipSteps"`
	NumCompanies    int     `json:"numCompanies"`
	NumTimesteps    int     `json:"numTimesteps"`

	Best    float64 `json:"best"`
	Average float64 `json:"average"`
	Spread  float64 `json:"spread"`

	// per-timestep statistics, set when at least 2 timesteps remain
	BestMetrics    *SeriesMetrics `json:"bestMetrics,omitempty"`
	AverageMetrics *SeriesMetrics `json:"averageMetrics,omitempty"`

	// set by Evaluate
	Strategy     *float64 `json:"strategy,omitempty"`
	CaptureRatio *float64 `json:"captureRatio,omitempty"`

	opts []Option
}

func NewBaselineReport(m mat.Matrix, opts ...Option) (*BaselineReport, error) {
	cfg, err := prepare(m, opts)
	if err != nil {
		return nil, err
	}

	bestSeries, err := reduceSteps(m, cfg, maxReturn)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate best return: %w", err)
	}
	best, err := scaledSum(bestSeries, cfg.dailyInvestment)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate best return: %w", err)
	}

	avgSeries, err := reduceSteps(m, cfg, meanReturn)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate average return: %w", err)
	}
	avg, err := scaledSum(avgSeries, cfg.dailyInvestment)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate average return: %w", err)
	}

	numCompanies, numTimesteps := m.Dims()
	report := &BaselineReport{
		DailyInvestment: cfg.dailyInvestment,
		SkipSteps:       cfg.skipSteps,
		NumCompanies:    numCompanies,
		NumTimesteps:    numTimesteps,
		Best:            best,
		Average:         avg,
		Spread:          best - avg,
		opts:            opts,
	}

	if len(bestSeries) >= 2 {
		report.BestMetrics, err = CalculateSeriesMetrics(bestSeries)
		if err != nil {
			return nil, err
		}
		report.AverageMetrics, err = CalculateSeriesMetrics(avgSeries)
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Evaluate scores a strategy's per-timestep company picks against
// the baselines. CaptureRatio is 0 at the index average and 1 at
// the oracle; it is left nil when the two baselines are equal
func (r *BaselineReport) Evaluate(m mat.Matrix, picks []int) error {
	strategy, err := SelectedReturn(m, picks, r.opts...)
	if err != nil {
		return fmt.Errorf("failed to calculate strategy return: %w", err)
	}

	r.Strategy = &strategy
	r.CaptureRatio = nil
	if r.Spread != 0 && !math.IsNaN(r.Spread) {
		ratio := (strategy - r.Average) / r.Spread
		r.CaptureRatio = &ratio
	}
	return nil
}
