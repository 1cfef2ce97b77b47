// Package inference evaluates the pretrained churn classifier: a standard
// scaler and one-hot encoder feeding a dense feed-forward network.
package inference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"telcochurn/internal/errors"
)

// Artifact file names inside the model directory
const (
	ScalerFile  = "scaler.json"
	EncoderFile = "encoder.json"
	NetworkFile = "network.json"
)

// Artifacts are the three model files as decoded from disk
type Artifacts struct {
	Scaler  ScalerSpec
	Encoder EncoderSpec
	Network NetworkSpec
}

// ScalerSpec standardizes numeric columns as (x - mean) / scale
type ScalerSpec struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// EncoderSpec one-hot encodes categorical columns
type EncoderSpec struct {
	Columns    []string   `json:"columns"`
	Categories [][]string `json:"categories"`
	// HandleUnknown is "ignore" (all zeros, the default) or "error"
	HandleUnknown string `json:"handle_unknown,omitempty"`
}

// NetworkSpec is a stack of dense layers
type NetworkSpec struct {
	Layers []LayerSpec `json:"layers"`
}

// LayerSpec holds weights shaped [inputs][units]
type LayerSpec struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// LoadArtifacts reads scaler.json, encoder.json and network.json from dir
func LoadArtifacts(dir string) (*Artifacts, error) {
	var a Artifacts
	files := []struct {
		name string
		dst  interface{}
	}{
		{ScalerFile, &a.Scaler},
		{EncoderFile, &a.Encoder},
		{NetworkFile, &a.Network},
	}
	for _, f := range files {
		if err := readJSON(filepath.Join(dir, f.name), f.dst); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

// Save writes the artifacts to dir in the format LoadArtifacts reads
func (a *Artifacts) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	files := map[string]interface{}{
		ScalerFile:  a.Scaler,
		EncoderFile: a.Encoder,
		NetworkFile: a.Network,
	}
	for name, v := range files {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ModelError(fmt.Sprintf("failed to read %s", filepath.Base(path)), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.ModelError(fmt.Sprintf("failed to decode %s", filepath.Base(path)), err)
	}
	return nil
}
