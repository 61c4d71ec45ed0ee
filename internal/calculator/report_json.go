package calculator

import (
	"encoding/json"
	"math"
)

// jsonFloat encodes NaN and infinities as null
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (r BaselineReport) MarshalJSON() ([]byte, error) {
	type alias BaselineReport
	return json.Marshal(struct {
		alias
		Best         jsonFloat  `json:"best"`
		Average      jsonFloat  `json:"average"`
		Spread       jsonFloat  `json:"spread"`
		Strategy     *jsonFloat `json:"strategy,omitempty"`
		CaptureRatio *jsonFloat `json:"captureRatio,omitempty"`
	}{
		alias:        alias(r),
		Best:         jsonFloat(r.Best),
		Average:      jsonFloat(r.Average),
		Spread:       jsonFloat(r.Spread),
		Strategy:     (*jsonFloat)(r.Strategy),
		CaptureRatio: (*jsonFloat)(r.CaptureRatio),
	})
}

func (m SeriesMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MeanReturn      jsonFloat `json:"meanReturn"`
		Stdev           jsonFloat `json:"stdev"`
		AnnualizedStdev jsonFloat `json:"annualizedStdev"`
		SharpeRatio     jsonFloat `json:"sharpeRatio"`
	}{
		MeanReturn:      jsonFloat(m.MeanReturn),
		Stdev:           jsonFloat(m.Stdev),
		AnnualizedStdev: jsonFloat(m.AnnualizedStdev),
		SharpeRatio:     jsonFloat(m.SharpeRatio),
	})
}
