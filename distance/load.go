package distance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Instance kinds understood by Parse.
const (
	KindEuc2D  = "euc2d"
	KindCeil2D = "ceil2d"
	KindMatrix = "matrix"
)

// Instance is the on-disk description of a problem instance.
//
//	name: square4
//	kind: euc2d            # euc2d | ceil2d | matrix
//	coords: [[0,0],[0,10],[10,10],[10,0]]
//
// or, for explicit (possibly asymmetric) weights:
//
//	name: tiny
//	kind: matrix
//	matrix:
//	  - [0, 3, 4]
//	  - [2, 0, 5]
//	  - [7, 1, 0]
type Instance struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"`
	Comment string      `yaml:"comment,omitempty"`
	Coords  [][]float64 `yaml:"coords,omitempty"`
	Matrix  [][]int64   `yaml:"matrix,omitempty"`
}

// Load reads and parses an instance file.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("distance: read instance %s: %w", path, err)
	}
	inst, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("distance: parse instance %s: %w", path, err)
	}

	return inst, nil
}

// Parse decodes a YAML instance. An empty kind defaults to euc2d when
// coordinates are present and to matrix otherwise.
func Parse(data []byte) (*Instance, error) {
	var inst Instance
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return nil, err
	}
	inst.Kind = strings.ToLower(strings.TrimSpace(inst.Kind))
	if inst.Kind == "" {
		if len(inst.Coords) > 0 {
			inst.Kind = KindEuc2D
		} else {
			inst.Kind = KindMatrix
		}
	}

	return &inst, nil
}

// Model builds the distance model described by the instance.
func (inst *Instance) Model() (Model, error) {
	switch inst.Kind {
	case KindEuc2D, KindCeil2D:
		pts := make([][2]float64, len(inst.Coords))

		var i int
		for i = range inst.Coords {
			if len(inst.Coords[i]) != 2 {
				return nil, fmt.Errorf("coords[%d]: %w", i, ErrBadCoordinates)
			}
			pts[i] = [2]float64{inst.Coords[i][0], inst.Coords[i][1]}
		}
		r := RoundNearest
		if inst.Kind == KindCeil2D {
			r = RoundUp
		}

		return NewEuclidean(pts, r)

	case KindMatrix:
		return NewMatrix(inst.Matrix)

	default:
		return nil, fmt.Errorf("%q: %w", inst.Kind, ErrUnknownKind)
	}
}
