package visualization

import (
	"math"
	"sort"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultPoints is the grid size used when the caller passes zero
const DefaultPoints = 200

// Curve is a kernel density estimate of one hue group evaluated on a grid
type Curve struct {
	Hue       string    `json:"hue"`
	Count     int       `json:"count"`
	Bandwidth float64   `json:"bandwidth"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
}

// KDE estimates the density of numeric column x separately for every value of
// hue, on one grid shared by all groups. An empty hue yields a single curve.
// Groups with fewer than two values or no spread are skipped.
func KDE(table *dataset.Table, x, hue string, points int) ([]Curve, error) {
	if points == 0 {
		points = DefaultPoints
	}
	if points < 2 {
		return nil, core.NewInvalidArgumentError("points", "need at least 2 grid points")
	}

	xs, err := table.NumericColumn(x)
	if err != nil {
		return nil, err
	}

	groups := map[string][]float64{}
	var keys []string
	if hue == "" {
		keys = []string{""}
		groups[""] = xs.Present()
	} else {
		hs, err := table.Column(hue)
		if err != nil {
			return nil, err
		}
		for i, v := range xs.Numbers {
			if math.IsNaN(v) || hs.IsMissing(i) {
				continue
			}
			key := hs.Format(i)
			if _, ok := groups[key]; !ok {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], v)
		}
		sort.Strings(keys)
	}

	type group struct {
		key    string
		values []float64
		h      float64
	}
	var usable []group
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, key := range keys {
		values := groups[key]
		h := scott(values)
		if h == 0 || math.IsNaN(h) {
			continue
		}
		lo = math.Min(lo, floats.Min(values)-3*h)
		hi = math.Max(hi, floats.Max(values)+3*h)
		usable = append(usable, group{key: key, values: values, h: h})
	}
	if len(usable) == 0 {
		return nil, nil
	}

	grid := floats.Span(make([]float64, points), lo, hi)
	curves := make([]Curve, 0, len(usable))
	for _, g := range usable {
		curves = append(curves, Curve{
			Hue:       g.key,
			Count:     len(g.values),
			Bandwidth: g.h,
			X:         grid,
			Y:         density(g.values, g.h, grid),
		})
	}
	return curves, nil
}

// scott returns the bandwidth sd·n^(-1/5)
func scott(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	_, sd := stat.MeanStdDev(values, nil)
	return sd * math.Pow(float64(len(values)), -0.2)
}

func density(values []float64, h float64, grid []float64) []float64 {
	y := make([]float64, len(grid))
	n := float64(len(values))
	for i, at := range grid {
		sum := 0.0
		for _, v := range values {
			sum += distuv.UnitNormal.Prob((at - v) / h)
		}
		y[i] = sum / (n * h)
	}
	return y
}
