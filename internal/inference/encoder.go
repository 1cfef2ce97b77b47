package inference

import (
	"fmt"

	"telcochurn/domain/dataset"
	"telcochurn/internal/errors"

	"gonum.org/v1/gonum/mat"
)

// Encoder is a validated one-hot encoder
type Encoder struct {
	columns  []string
	index    []map[string]int
	offsets  []int
	width    int
	strictly bool
}

// NewEncoder validates spec and indexes its categories
func NewEncoder(spec EncoderSpec) (*Encoder, error) {
	if len(spec.Categories) != len(spec.Columns) {
		return nil, errors.ModelError(fmt.Sprintf("encoder has %d columns and %d category lists", len(spec.Columns), len(spec.Categories)), nil)
	}
	switch spec.HandleUnknown {
	case "", "ignore", "error":
	default:
		return nil, errors.ModelError(fmt.Sprintf("unknown handle_unknown %q", spec.HandleUnknown), nil)
	}

	e := &Encoder{
		columns:  spec.Columns,
		index:    make([]map[string]int, len(spec.Columns)),
		offsets:  make([]int, len(spec.Columns)),
		strictly: spec.HandleUnknown == "error",
	}
	for j, cats := range spec.Categories {
		e.offsets[j] = e.width
		e.index[j] = make(map[string]int, len(cats))
		for k, c := range cats {
			if _, dup := e.index[j][c]; dup {
				return nil, errors.ModelError(fmt.Sprintf("duplicate category %q for %s", c, spec.Columns[j]), nil)
			}
			e.index[j][c] = k
		}
		e.width += len(cats)
	}
	return e, nil
}

// Width is the number of output features
func (e *Encoder) Width() int {
	return e.width
}

// Transform one-hot encodes table into a rows×Width matrix. Unknown and
// missing categories encode as all zeros unless the encoder is strict.
func (e *Encoder) Transform(table *dataset.Table) (*mat.Dense, error) {
	if e.width == 0 {
		return nil, nil
	}
	out := mat.NewDense(table.Len(), e.width, nil)
	for j, name := range e.columns {
		col, err := table.Column(name)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", name)
		}
		for i := 0; i < col.Len(); i++ {
			k, ok := e.index[j][col.Format(i)]
			if !ok {
				if e.strictly {
					return nil, errors.InvalidInput(fmt.Sprintf("unknown category %q for %s", col.Format(i), name))
				}
				continue
			}
			out.Set(i, e.offsets[j]+k, 1)
		}
	}
	return out, nil
}
