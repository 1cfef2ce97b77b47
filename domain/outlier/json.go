package outlier

import (
	"encoding/json"
	"math"
)

// Statistics over short or all-missing columns can be NaN, which encoding/json
// rejects; those values are emitted as null.

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (r DistributionRecord) MarshalJSON() ([]byte, error) {
	type alias DistributionRecord
	return json.Marshal(struct {
		alias
		Skewness *float64 `json:"skewness"`
	}{alias(r), finite(r.Skewness)})
}

func (r SummaryRecord) MarshalJSON() ([]byte, error) {
	type alias SummaryRecord
	return json.Marshal(struct {
		alias
		Skewness *float64 `json:"skewness"`
	}{alias(r), finite(r.Skewness)})
}

func (r OutlierRecord) MarshalJSON() ([]byte, error) {
	type alias OutlierRecord
	return json.Marshal(struct {
		alias
		Upper *float64 `json:"upper"`
		Lower *float64 `json:"lower"`
	}{alias(r), finite(r.Upper), finite(r.Lower)})
}

func (b Boundaries) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Upper *float64 `json:"upper"`
		Lower *float64 `json:"lower"`
	}{finite(b.Upper), finite(b.Lower)})
}
