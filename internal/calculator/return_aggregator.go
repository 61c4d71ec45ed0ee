package calculator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// stepReducer collapses the returns of every company at
// one timestep into a single value
type stepReducer func(returns []float64) (float64, error)

// BestReturn is the non-compounding return of an oracle that invests
// dailyInvestment in the best performing company at every timestep
// and sells it at the end of the same timestep.
//
// rows of m are companies, columns are timesteps.
func BestReturn(m mat.Matrix, opts ...Option) (float64, error) {
	return totalReturn(m, maxReturn, opts)
}

// AverageReturn is the non-compounding return of investing
// dailyInvestment in the uniformly weighted index at every
// timestep
func AverageReturn(m mat.Matrix, opts ...Option) (float64, error) {
	return totalReturn(m, meanReturn, opts)
}

// BestSeries returns the max return of each timestep after
// dropping the skipped steps. it is not scaled by investment
func BestSeries(m mat.Matrix, opts ...Option) ([]float64, error) {
	cfg, err := prepare(m, opts)
	if err != nil {
		return nil, err
	}
	return reduceSteps(m, cfg, maxReturn)
}

// AverageSeries returns the index average of each timestep
// after dropping the skipped steps
func AverageSeries(m mat.Matrix, opts ...Option) ([]float64, error) {
	cfg, err := prepare(m, opts)
	if err != nil {
		return nil, err
	}
	return reduceSteps(m, cfg, meanReturn)
}

// SelectedReturn is the non-compounding return of a strategy that
// invests in company picks[t] at timestep t. picks before the
// skipped steps are ignored
func SelectedReturn(m mat.Matrix, picks []int, opts ...Option) (float64, error) {
	cfg, err := prepare(m, opts)
	if err != nil {
		return 0, err
	}
	numCompanies, numTimesteps := m.Dims()
	if len(picks) != numTimesteps {
		return 0, fmt.Errorf("%w: got %d picks for %d timesteps", ErrInvalidPick, len(picks), numTimesteps)
	}

	series := make([]float64, 0, numTimesteps-cfg.skipSteps)
	for t := cfg.skipSteps; t < numTimesteps; t++ {
		pick := picks[t]
		if pick < 0 || pick >= numCompanies {
			return 0, fmt.Errorf("%w: pick %d at timestep %d is outside [0, %d)", ErrInvalidPick, pick, t, numCompanies)
		}
		series = append(series, m.At(pick, t))
	}

	return scaledSum(series, cfg.dailyInvestment)
}

func totalReturn(m mat.Matrix, reduce stepReducer, opts []Option) (float64, error) {
	cfg, err := prepare(m, opts)
	if err != nil {
		return 0, err
	}
	series, err := reduceSteps(m, cfg, reduce)
	if err != nil {
		return 0, err
	}
	return scaledSum(series, cfg.dailyInvestment)
}

func prepare(m mat.Matrix, opts []Option) (aggregateConfig, error) {
	cfg := newAggregateConfig(opts)
	numCompanies, numTimesteps, err := dims(m)
	if err != nil {
		return cfg, err
	}
	if numCompanies == 0 || numTimesteps == 0 {
		return cfg, fmt.Errorf("%w: got %d companies and %d timesteps", ErrInvalidShape, numCompanies, numTimesteps)
	}
	if err := cfg.validate(numTimesteps); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// dims also rejects typed nils like a nil *mat.Dense, whose
// Dims method dereferences the receiver
func dims(m mat.Matrix) (numCompanies, numTimesteps int, err error) {
	if m == nil {
		return 0, 0, fmt.Errorf("%w: matrix is nil", ErrInvalidShape)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: cannot read dimensions: %v", ErrInvalidShape, r)
		}
	}()
	numCompanies, numTimesteps = m.Dims()
	return numCompanies, numTimesteps, nil
}

// reduceSteps applies reduce to every timestep from skipSteps on.
// each step writes only its own slot, so the output is the same
// for any number of workers
func reduceSteps(m mat.Matrix, cfg aggregateConfig, reduce stepReducer) ([]float64, error) {
	_, numTimesteps := m.Dims()
	series := make([]float64, numTimesteps-cfg.skipSteps)

	g := errgroup.Group{}
	g.SetLimit(cfg.workers)
	for i := range series {
		i := i
		t := cfg.skipSteps + i
		g.Go(func() error {
			value, err := reduce(mat.Col(nil, t, m))
			if err != nil {
				return fmt.Errorf("failed to reduce timestep %d: %w", t, err)
			}
			series[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return series, nil
}

// scaledSum adds the series in index order, then scales it
func scaledSum(series []float64, dailyInvestment float64) (float64, error) {
	sum, err := stats.Sum(series)
	if err != nil {
		return 0, fmt.Errorf("failed to sum returns: %w", err)
	}
	return dailyInvestment * sum, nil
}

// maxReturn is NaN if any company's return is NaN
func maxReturn(returns []float64) (float64, error) {
	if floats.HasNaN(returns) {
		return math.NaN(), nil
	}
	return stats.Max(returns)
}

func meanReturn(returns []float64) (float64, error) {
	return stats.Mean(returns)
}
