// sim/distribution.go
package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"
)

// DistributionKind names a supported probability distribution.
type DistributionKind string

const (
	DistNormal     DistributionKind = "normal"
	DistUniform    DistributionKind = "uniform"
	DistTriangular DistributionKind = "triangular"
	DistDiscrete   DistributionKind = "discrete"
)

// probabilityTolerance bounds how far discrete probabilities may drift from
// summing to exactly 1.
const probabilityTolerance = 1e-6

// ParameterDistribution defines how one configuration leaf is perturbed per
// Monte Carlo iteration. Path addresses the leaf in the nested scenario
// config; Kind selects the distribution; the remaining fields are the
// distribution's parameters (only those for the selected kind are read).
//
// Sampling is stateless per call: draws are independent and validated at the
// point of use, so a malformed definition fails on the first Sample rather than
// being silently defaulted.
type ParameterDistribution struct {
	Path []string         `yaml:"path"`
	Kind DistributionKind `yaml:"kind"`

	// normal
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`

	// uniform and triangular
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	// triangular only
	Mode float64 `yaml:"mode"`

	// discrete
	Values        []any     `yaml:"values"`
	Probabilities []float64 `yaml:"probabilities"`
}

// PathString returns the dot-joined parameter path.
func (d ParameterDistribution) PathString() string {
	return PathString(d.Path)
}

// Sample draws one value from the distribution using src. Numeric kinds
// return float64; discrete returns whichever element type Values holds.
func (d ParameterDistribution) Sample(src rand.Source) (any, error) {
	switch d.Kind {
	case DistNormal:
		if d.Std <= 0 {
			return nil, fmt.Errorf("%w: normal %q requires std > 0 (got %v)", ErrBadDistribution, d.PathString(), d.Std)
		}
		return distuv.Normal{Mu: d.Mean, Sigma: d.Std, Src: src}.Rand(), nil

	case DistUniform:
		if d.High <= d.Low {
			return nil, fmt.Errorf("%w: uniform %q requires low < high (got [%v, %v))", ErrBadDistribution, d.PathString(), d.Low, d.High)
		}
		return distuv.Uniform{Min: d.Low, Max: d.High, Src: src}.Rand(), nil

	case DistTriangular:
		if !(d.Low < d.High) || d.Mode < d.Low || d.Mode > d.High {
			return nil, fmt.Errorf("%w: triangular %q requires low <= mode <= high with low < high (got %v, %v, %v)",
				ErrBadDistribution, d.PathString(), d.Low, d.Mode, d.High)
		}
		return distuv.NewTriangle(d.Low, d.High, d.Mode, src).Rand(), nil

	case DistDiscrete:
		return d.sampleDiscrete(src)

	default:
		return nil, fmt.Errorf("%w: unknown distribution kind %q for %q", ErrBadDistribution, d.Kind, d.PathString())
	}
}

func (d ParameterDistribution) sampleDiscrete(src rand.Source) (any, error) {
	if len(d.Values) == 0 {
		return nil, fmt.Errorf("%w: discrete %q must specify values", ErrBadDistribution, d.PathString())
	}
	if len(d.Probabilities) == 0 {
		return d.Values[rand.New(src).IntN(len(d.Values))], nil
	}
	if len(d.Probabilities) != len(d.Values) {
		return nil, fmt.Errorf("%w: discrete %q has %d values but %d probabilities",
			ErrBadDistribution, d.PathString(), len(d.Values), len(d.Probabilities))
	}
	sum := 0.0
	for _, p := range d.Probabilities {
		if p < 0 {
			return nil, fmt.Errorf("%w: discrete %q has negative probability %v", ErrBadDistribution, d.PathString(), p)
		}
		sum += p
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return nil, fmt.Errorf("%w: discrete %q probabilities sum to %v, want 1", ErrBadDistribution, d.PathString(), sum)
	}
	idx := int(distuv.NewCategorical(d.Probabilities, src).Rand())
	return d.Values[idx], nil
}

// LoadDistributions reads a list of parameter distributions from a YAML file
// of the form:
//
//	distributions:
//	  - path: [renewable_capacity, growth_rates, solar]
//	    kind: normal
//	    mean: 0.18
//	    std: 0.03
func LoadDistributions(path string) ([]ParameterDistribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read distributions %s: %w", path, err)
	}
	var doc struct {
		Distributions []ParameterDistribution `yaml:"distributions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse distributions %s: %w", path, err)
	}
	if len(doc.Distributions) == 0 {
		return nil, fmt.Errorf("distributions %s: no distributions defined", path)
	}
	for _, d := range doc.Distributions {
		if len(d.Path) == 0 {
			return nil, fmt.Errorf("distributions %s: entry with kind %q has no path", path, d.Kind)
		}
	}
	return doc.Distributions, nil
}
