package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplingSource() *PartitionedRNG {
	return NewPartitionedRNG(NewSimulationKey(1234))
}

func TestDistribution_Uniform(t *testing.T) {
	// GIVEN a uniform distribution over [0, 1)
	d := ParameterDistribution{Path: []string{"p"}, Kind: DistUniform, Low: 0, High: 1}
	src := samplingSource().Source(SubsystemSampling)

	// WHEN drawing many samples
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		v, err := d.Sample(src)
		require.NoError(t, err)
		f := v.(float64)
		// THEN every draw lies in [low, high)
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
		sum += f
	}

	// AND the sample mean is close to the theoretical 0.5
	mean := sum / n
	assert.Greater(t, mean, 0.48)
	assert.Less(t, mean, 0.52)
}

func TestDistribution_Normal(t *testing.T) {
	d := ParameterDistribution{Path: []string{"p"}, Kind: DistNormal, Mean: 5, Std: 1}
	src := samplingSource().Source(SubsystemSampling)

	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		v, err := d.Sample(src)
		require.NoError(t, err)
		sum += v.(float64)
	}
	assert.InDelta(t, 5.0, sum/n, 0.02)
}

func TestDistribution_Triangular_StaysWithinBounds(t *testing.T) {
	d := ParameterDistribution{Path: []string{"p"}, Kind: DistTriangular, Low: 1, Mode: 2, High: 4}
	src := samplingSource().Source(SubsystemSampling)

	for i := 0; i < 10000; i++ {
		v, err := d.Sample(src)
		require.NoError(t, err)
		f := v.(float64)
		require.GreaterOrEqual(t, f, 1.0)
		require.LessOrEqual(t, f, 4.0)
	}
}

func TestDistribution_Discrete_DegenerateProbabilities(t *testing.T) {
	// GIVEN a discrete distribution with all mass on the first value
	d := ParameterDistribution{
		Path:          []string{"p"},
		Kind:          DistDiscrete,
		Values:        []any{"a", "b"},
		Probabilities: []float64{1.0, 0.0},
	}
	src := samplingSource().Source(SubsystemSampling)

	// THEN every draw is "a"
	for i := 0; i < 100; i++ {
		v, err := d.Sample(src)
		require.NoError(t, err)
		assert.Equal(t, "a", v)
	}
}

func TestDistribution_Discrete_UniformWithoutProbabilities(t *testing.T) {
	d := ParameterDistribution{Path: []string{"p"}, Kind: DistDiscrete, Values: []any{1.0, 2.0, 3.0}}
	src := samplingSource().Source(SubsystemSampling)

	seen := map[any]int{}
	for i := 0; i < 3000; i++ {
		v, err := d.Sample(src)
		require.NoError(t, err)
		seen[v]++
	}
	// All three values should show up
	assert.Len(t, seen, 3)
}

func TestDistribution_Validation(t *testing.T) {
	src := samplingSource().Source(SubsystemSampling)

	cases := []struct {
		name string
		d    ParameterDistribution
	}{
		{"normal zero std", ParameterDistribution{Path: []string{"p"}, Kind: DistNormal, Mean: 1, Std: 0}},
		{"normal negative std", ParameterDistribution{Path: []string{"p"}, Kind: DistNormal, Mean: 1, Std: -1}},
		{"uniform inverted bounds", ParameterDistribution{Path: []string{"p"}, Kind: DistUniform, Low: 2, High: 1}},
		{"uniform equal bounds", ParameterDistribution{Path: []string{"p"}, Kind: DistUniform, Low: 1, High: 1}},
		{"triangular mode below low", ParameterDistribution{Path: []string{"p"}, Kind: DistTriangular, Low: 1, Mode: 0, High: 2}},
		{"triangular mode above high", ParameterDistribution{Path: []string{"p"}, Kind: DistTriangular, Low: 1, Mode: 3, High: 2}},
		{"unknown kind", ParameterDistribution{Path: []string{"p"}, Kind: "lognormal"}},
		{"discrete no values", ParameterDistribution{Path: []string{"p"}, Kind: DistDiscrete}},
		{"discrete length mismatch", ParameterDistribution{Path: []string{"p"}, Kind: DistDiscrete, Values: []any{"a", "b"}, Probabilities: []float64{1.0}}},
		{"discrete negative probability", ParameterDistribution{Path: []string{"p"}, Kind: DistDiscrete, Values: []any{"a", "b"}, Probabilities: []float64{1.5, -0.5}}},
		{"discrete probabilities sum wrong", ParameterDistribution{Path: []string{"p"}, Kind: DistDiscrete, Values: []any{"a", "b"}, Probabilities: []float64{0.6, 0.6}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.d.Sample(src)
			assert.ErrorIs(t, err, ErrBadDistribution)
		})
	}
}

func TestDistribution_Discrete_ProbabilityTolerance(t *testing.T) {
	// A sum off by less than 1e-6 is accepted
	d := ParameterDistribution{
		Path:          []string{"p"},
		Kind:          DistDiscrete,
		Values:        []any{"a", "b"},
		Probabilities: []float64{0.5, 0.5 + 5e-7},
	}
	_, err := d.Sample(samplingSource().Source(SubsystemSampling))
	assert.NoError(t, err)
}

func TestLoadDistributions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dists.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
distributions:
  - path: [renewable_capacity, growth_rates, solar]
    kind: normal
    mean: 0.18
    std: 0.03
  - path: [grid, annual_expansion_rate]
    kind: triangular
    low: 0.03
    mode: 0.06
    high: 0.10
`), 0o644))

	dists, err := LoadDistributions(path)
	require.NoError(t, err)
	require.Len(t, dists, 2)
	assert.Equal(t, "renewable_capacity.growth_rates.solar", dists[0].PathString())
	assert.Equal(t, DistNormal, dists[0].Kind)
	assert.Equal(t, 0.03, dists[0].Std)
	assert.Equal(t, DistTriangular, dists[1].Kind)
}

func TestLoadDistributions_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDistributions(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("distributions: []\n"), 0o644))
	_, err = LoadDistributions(empty)
	assert.Error(t, err)

	noPath := filepath.Join(dir, "nopath.yaml")
	require.NoError(t, os.WriteFile(noPath, []byte("distributions:\n  - kind: normal\n    mean: 1\n    std: 1\n"), 0o644))
	_, err = LoadDistributions(noPath)
	assert.Error(t, err)
}
