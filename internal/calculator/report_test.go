package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func Test_NewBaselineReport(t *testing.T) {
	t.Run("sample matrix", func(t *testing.T) {
		report, err := NewBaselineReport(sampleMatrix())
		require.NoError(t, err)

		require.Equal(t, 100.0, report.DailyInvestment)
		require.Equal(t, 0, report.SkipSteps)
		require.Equal(t, 2, report.NumCompanies)
		require.Equal(t, 2, report.NumTimesteps)
		require.InDelta(t, 30, report.Best, 1e-9)
		require.InDelta(t, 12.5, report.Average, 1e-9)
		require.InDelta(t, 17.5, report.Spread, 1e-9)
		require.Nil(t, report.Strategy)
		require.Nil(t, report.CaptureRatio)
	})

	t.Run("series metrics", func(t *testing.T) {
		report, err := NewBaselineReport(sampleMatrix())
		require.NoError(t, err)
		require.NotNil(t, report.BestMetrics)
		require.InDelta(t, 0.15, report.BestMetrics.MeanReturn, 1e-12)
		require.NotNil(t, report.AverageMetrics)
		require.InDelta(t, 0.0625, report.AverageMetrics.MeanReturn, 1e-12)

		report, err = NewBaselineReport(sampleMatrix(), WithSkipSteps(1))
		require.NoError(t, err)
		require.Nil(t, report.BestMetrics)
		require.Nil(t, report.AverageMetrics)
	})

	t.Run("invalid skip", func(t *testing.T) {
		_, err := NewBaselineReport(sampleMatrix(), WithSkipSteps(2))
		require.ErrorIs(t, err, ErrInvalidSkip)
	})

	t.Run("evaluate strategy", func(t *testing.T) {
		report, err := NewBaselineReport(sampleMatrix())
		require.NoError(t, err)

		err = report.Evaluate(sampleMatrix(), []int{1, 0})
		require.NoError(t, err)
		require.NotNil(t, report.Strategy)
		require.InDelta(t, 25, *report.Strategy, 1e-9)
		require.NotNil(t, report.CaptureRatio)
		require.InDelta(t, 12.5/17.5, *report.CaptureRatio, 1e-9)
	})

	t.Run("evaluate uses report options", func(t *testing.T) {
		report, err := NewBaselineReport(sampleMatrix(), WithSkipSteps(1), WithDailyInvestment(10))
		require.NoError(t, err)

		err = report.Evaluate(sampleMatrix(), []int{-1, 0})
		require.NoError(t, err)
		require.InDelta(t, 2, *report.Strategy, 1e-9)
		require.InDelta(t, 1, *report.CaptureRatio, 1e-9)
	})

	t.Run("no spread leaves capture ratio unset", func(t *testing.T) {
		m := mat.NewDense(1, 3, []float64{0.01, 0.02, 0.03})
		report, err := NewBaselineReport(m)
		require.NoError(t, err)

		err = report.Evaluate(m, []int{0, 0, 0})
		require.NoError(t, err)
		require.Nil(t, report.CaptureRatio)

		bytes, err := json.Marshal(report)
		require.NoError(t, err)
		require.NotContains(t, string(bytes), "captureRatio")
	})

	t.Run("bad picks", func(t *testing.T) {
		report, err := NewBaselineReport(sampleMatrix())
		require.NoError(t, err)
		err = report.Evaluate(sampleMatrix(), []int{0, 0, 0})
		require.ErrorIs(t, err, ErrInvalidPick)
	})
}

func Test_BaselineReport_MarshalJSON(t *testing.T) {
	t.Run("finite values", func(t *testing.T) {
		report, err := NewBaselineReport(sampleMatrix())
		require.NoError(t, err)
		require.NoError(t, report.Evaluate(sampleMatrix(), []int{1, 0}))

		bytes, err := json.Marshal(report)
		require.NoError(t, err)

		out := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(bytes, &out))
		require.InDelta(t, 30, out["best"], 1e-9)
		require.InDelta(t, 12.5, out["average"], 1e-9)
		require.InDelta(t, 25, out["strategy"], 1e-9)
		require.Equal(t, 2.0, out["numCompanies"])
		require.Contains(t, out, "bestMetrics")
	})

	t.Run("nan result is null", func(t *testing.T) {
		m := mat.NewDense(2, 3, []float64{
			0.01, math.NaN(), 0.02,
			0.03, 0.04, 0.05,
		})
		report, err := NewBaselineReport(m)
		require.NoError(t, err)
		require.True(t, math.IsNaN(report.Best))

		bytes, err := json.Marshal(report)
		require.NoError(t, err)

		out := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(bytes, &out))
		require.Contains(t, out, "best")
		require.Nil(t, out["best"])
		require.Nil(t, out["average"])

		metrics, ok := out["bestMetrics"].(map[string]interface{})
		require.True(t, ok)
		require.Nil(t, metrics["stdev"])
	})
}
