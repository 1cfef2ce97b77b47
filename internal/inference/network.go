package inference

import (
	"fmt"
	"math"

	"telcochurn/internal/errors"

	"gonum.org/v1/gonum/mat"
)

type activation func(float64) float64

var activations = map[string]activation{
	"relu": func(v float64) float64 { return math.Max(0, v) },
	"sigmoid": func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	},
	"tanh":   math.Tanh,
	"linear": func(v float64) float64 { return v },
	"":       func(v float64) float64 { return v },
}

type layer struct {
	weights *mat.Dense
	bias    []float64
	act     activation
}

// Network is a validated dense feed-forward network
type Network struct {
	layers []layer
	inputs int
}

// NewNetwork validates layer shapes and chains
func NewNetwork(spec NetworkSpec) (*Network, error) {
	if len(spec.Layers) == 0 {
		return nil, errors.ModelError("network has no layers", nil)
	}

	n := &Network{}
	for li, ls := range spec.Layers {
		rows := len(ls.Weights)
		if rows == 0 || len(ls.Weights[0]) == 0 {
			return nil, errors.ModelError(fmt.Sprintf("layer %d has empty weights", li), nil)
		}
		units := len(ls.Weights[0])
		data := make([]float64, 0, rows*units)
		for r, row := range ls.Weights {
			if len(row) != units {
				return nil, errors.ModelError(fmt.Sprintf("layer %d weight row %d has %d units, want %d", li, r, len(row), units), nil)
			}
			data = append(data, row...)
		}
		if len(ls.Bias) != units {
			return nil, errors.ModelError(fmt.Sprintf("layer %d has %d biases for %d units", li, len(ls.Bias), units), nil)
		}
		act, ok := activations[ls.Activation]
		if !ok {
			return nil, errors.ModelError(fmt.Sprintf("layer %d has unknown activation %q", li, ls.Activation), nil)
		}
		if li == 0 {
			n.inputs = rows
		} else if prev := n.layers[li-1].weights; rows != prev.RawMatrix().Cols {
			return nil, errors.ModelError(fmt.Sprintf("layer %d expects %d inputs, previous layer has %d units", li, rows, prev.RawMatrix().Cols), nil)
		}
		n.layers = append(n.layers, layer{weights: mat.NewDense(rows, units, data), bias: ls.Bias, act: act})
	}

	if out := n.layers[len(n.layers)-1].weights.RawMatrix().Cols; out != 1 {
		return nil, errors.ModelError(fmt.Sprintf("network must end in a single unit, has %d", out), nil)
	}
	return n, nil
}

// Inputs is the number of features the first layer expects
func (n *Network) Inputs() int {
	return n.inputs
}

// Forward evaluates the network on every row of x and returns one output per row
func (n *Network) Forward(x mat.Matrix) ([]float64, error) {
	_, cols := x.Dims()
	if cols != n.inputs {
		return nil, errors.ModelError(fmt.Sprintf("network expects %d features, got %d", n.inputs, cols), nil)
	}

	current := x
	for _, l := range n.layers {
		var next mat.Dense
		next.Mul(current, l.weights)
		next.Apply(func(_, j int, v float64) float64 {
			return l.act(v + l.bias[j])
		}, &next)
		current = &next
	}

	return mat.Col(nil, 0, current), nil
}
