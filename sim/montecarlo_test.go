package sim

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueComponent reports one fixed value per year, the minimal component for
// driving Monte Carlo batches in tests.
type valueComponent struct {
	BaseComponent
	value float64
}

func (c *valueComponent) Initialize() error { return nil }

func (c *valueComponent) Step(year int) error {
	c.Results().Append(Row{"year": year, "value": c.value})
	return nil
}

func (c *valueComponent) Finalize() error { return nil }

func gaugeConfig() Config {
	return Config{"g": map[string]any{"v": 1.0, "n": 0.0}}
}

// gaugeFactory builds a one-component engine whose Gauge reports the g.v
// configuration leaf.
func gaugeFactory() EngineFactory {
	return func(cfg Config) (*Engine, error) {
		v, err := cfg.Float("g", "v")
		if err != nil {
			return nil, err
		}
		e, err := NewEngine(2025, 2025)
		if err != nil {
			return nil, err
		}
		e.AddComponent(&valueComponent{BaseComponent: NewBaseComponent("Gauge", "year", "value"), value: v})
		return e, nil
	}
}

func uniformOn(path ...string) ParameterDistribution {
	return ParameterDistribution{Path: path, Kind: DistUniform, Low: 0, High: 1}
}

func findMetricRow(t *testing.T, frame *Frame, metric string) Row {
	t.Helper()
	for i := 0; i < frame.Len(); i++ {
		if frame.Row(i)["metric"] == metric {
			return frame.Row(i)
		}
	}
	t.Fatalf("metric %s not found in summary", metric)
	return nil
}

func TestMonteCarlo_IterationFailureDoesNotAbortBatch(t *testing.T) {
	// GIVEN a factory that fails on its third invocation
	inner := gaugeFactory()
	var mu sync.Mutex
	calls := 0
	factory := func(cfg Config) (*Engine, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 3 {
			return nil, errors.New("induced failure")
		}
		return inner(cfg)
	}

	mc := NewMonteCarlo(gaugeConfig(), []ParameterDistribution{uniformOn("g", "v")}, 5,
		WithSeed(1), WithOutputDir(t.TempDir()))

	// WHEN the batch runs
	summary, err := mc.Run(factory)

	// THEN the batch itself succeeds with exactly one failed iteration
	require.NoError(t, err)
	assert.Equal(t, 4, mc.Succeeded())
	assert.Equal(t, 1, mc.Failed())
	require.Len(t, mc.Records(), 5)

	failures := 0
	for _, rec := range mc.Records() {
		if rec.Err != nil {
			failures++
			assert.Nil(t, rec.Results)
		} else {
			assert.NotNil(t, rec.Results)
		}
	}
	assert.Equal(t, 1, failures)

	// AND statistics only cover the successful iterations
	row := findMetricRow(t, summary, "Gauge.value")
	assert.Equal(t, 4, row["count"])
}

func TestMonteCarlo_BaseConfigIsNeverMutated(t *testing.T) {
	// GIVEN a base config and samples far away from its values
	base := gaugeConfig()
	dist := ParameterDistribution{Path: []string{"g", "v"}, Kind: DistUniform, Low: 10, High: 20}
	mc := NewMonteCarlo(base, []ParameterDistribution{dist}, 3,
		WithSeed(2), WithOutputDir(t.TempDir()))

	// WHEN the batch runs
	_, err := mc.Run(gaugeFactory())
	require.NoError(t, err)

	// THEN the base config still holds its original value
	v, err := base.Float("g", "v")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	// AND each iteration saw exactly its own sample
	for i, rec := range mc.Records() {
		require.NoError(t, rec.Err)
		got, ok := rec.Results["Gauge"].Float(0, "value")
		require.True(t, ok)
		want, ok := asFloat(mc.Samples()[i]["g.v"])
		require.True(t, ok)
		assert.Equal(t, want, got, "iteration %d", i)
	}
}

func TestMonteCarlo_SummaryStatistics(t *testing.T) {
	// GIVEN a degenerate distribution so every iteration reports 2.0
	dist := ParameterDistribution{Path: []string{"g", "v"}, Kind: DistDiscrete, Values: []any{2.0}}
	mc := NewMonteCarlo(gaugeConfig(), []ParameterDistribution{dist}, 12,
		WithSeed(3), WithOutputDir(t.TempDir()))

	summary, err := mc.Run(gaugeFactory())
	require.NoError(t, err)

	assert.Equal(t, summaryColumns, summary.Columns())
	row := findMetricRow(t, summary, "Gauge.value")
	assert.Equal(t, 2.0, row["mean"])
	assert.Equal(t, 2.0, row["median"])
	assert.Equal(t, 0.0, row["std"])
	assert.Equal(t, 2.0, row["min"])
	assert.Equal(t, 2.0, row["max"])
	assert.Equal(t, 12, row["count"])

	// The year column of the final row is numeric, so it is a metric too
	yearRow := findMetricRow(t, summary, "Gauge.year")
	assert.Equal(t, 2025.0, yearRow["mean"])
}

func TestMonteCarlo_WorkerCountDoesNotChangeResults(t *testing.T) {
	// GIVEN two identically seeded batches differing only in worker count
	dists := []ParameterDistribution{uniformOn("g", "v")}
	sequential := NewMonteCarlo(gaugeConfig(), dists, 30,
		WithSeed(42), WithOutputDir(t.TempDir()))
	parallel := NewMonteCarlo(gaugeConfig(), dists, 30,
		WithSeed(42), WithWorkers(4), WithOutputDir(t.TempDir()))

	seqSummary, err := sequential.Run(gaugeFactory())
	require.NoError(t, err)
	parSummary, err := parallel.Run(gaugeFactory())
	require.NoError(t, err)

	// THEN the draw sequences and the aggregated statistics are identical
	assert.Equal(t, sequential.Samples(), parallel.Samples())
	seqRow := findMetricRow(t, seqSummary, "Gauge.value")
	parRow := findMetricRow(t, parSummary, "Gauge.value")
	assert.Equal(t, seqRow["mean"], parRow["mean"])
	assert.Equal(t, seqRow["std"], parRow["std"])
	assert.Equal(t, seqRow["count"], parRow["count"])
}

func TestMonteCarlo_PersistsArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mc")
	mc := NewMonteCarlo(gaugeConfig(), []ParameterDistribution{uniformOn("g", "v")}, 3,
		WithSeed(5), WithOutputDir(dir), WithSaveAllRuns())

	_, err := mc.Run(gaugeFactory())
	require.NoError(t, err)

	assert.Equal(t, dir, mc.OutputDir())
	for _, name := range []string{
		"summary_statistics.csv",
		"parameter_samples.csv",
		filepath.Join("all_runs", "run_0000", "parameters.csv"),
		filepath.Join("all_runs", "run_0000", "Gauge.csv"),
		filepath.Join("all_runs", "run_0002", "parameters.csv"),
	} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestMonteCarlo_UnknownDistributionPathAborts(t *testing.T) {
	mc := NewMonteCarlo(gaugeConfig(), []ParameterDistribution{uniformOn("g", "absent")}, 3,
		WithSeed(6), WithOutputDir(t.TempDir()))

	_, err := mc.Run(gaugeFactory())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Empty(t, mc.Records())
}

func TestMonteCarlo_MalformedDistributionAborts(t *testing.T) {
	bad := ParameterDistribution{Path: []string{"g", "v"}, Kind: DistNormal, Mean: 1, Std: 0}
	mc := NewMonteCarlo(gaugeConfig(), []ParameterDistribution{bad}, 3,
		WithSeed(7), WithOutputDir(t.TempDir()))

	_, err := mc.Run(gaugeFactory())
	assert.ErrorIs(t, err, ErrBadDistribution)
}
