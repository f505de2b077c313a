// sim/montecarlo.go
package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// EngineFactory builds a ready-to-run engine from a per-iteration
// configuration.
type EngineFactory func(cfg Config) (*Engine, error)

// SampledParams maps dot-joined parameter paths to the value drawn for one
// iteration.
type SampledParams map[string]any

// RunRecord is the explicit per-iteration outcome: either results or an
// error, never both. Failed iterations stay in the record list so the
// success/failure split is a first-class property of the run.
type RunRecord struct {
	Iteration  int
	Parameters SampledParams
	Results    map[string]*Frame
	Err        error
}

// MonteCarlo repeatedly re-runs the simulation with randomly perturbed
// configurations and aggregates the final-year metrics across iterations.
//
// Each iteration samples one value per distribution, applies the samples to
// a deep copy of the base configuration, builds a fresh engine via the
// factory, and runs it. A single iteration's failure is recorded and the
// batch continues. The base configuration is treated as read-only.
type MonteCarlo struct {
	baseConfig    Config
	distributions []ParameterDistribution
	iterations    int
	saveAllRuns   bool
	outputDir     string
	workers       int
	rng           *PartitionedRNG

	samples []SampledParams
	records []RunRecord
}

// MonteCarloOption configures a MonteCarlo runner.
type MonteCarloOption func(*MonteCarlo)

// WithSaveAllRuns persists every iteration's sampled parameters and
// component result tables under <outputDir>/all_runs/.
func WithSaveAllRuns() MonteCarloOption {
	return func(mc *MonteCarlo) { mc.saveAllRuns = true }
}

// WithOutputDir overrides the default timestamped results directory.
func WithOutputDir(dir string) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.outputDir = dir }
}

// WithWorkers runs iterations on n goroutines. Sampling stays on the
// coordinating goroutine, so the draw sequence depends only on the seed, and
// aggregation is keyed by iteration index, so statistics are identical
// regardless of completion order. Default is 1, the strictly sequential
// semantics.
func WithWorkers(n int) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.workers = n }
}

// WithSeed fixes the sampling RNG seed.
func WithSeed(seed int64) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.rng = NewPartitionedRNG(NewSimulationKey(seed)) }
}

// NewMonteCarlo creates a runner over a base configuration, the parameter
// distributions to perturb, and an iteration count.
func NewMonteCarlo(base Config, distributions []ParameterDistribution, iterations int, opts ...MonteCarloOption) *MonteCarlo {
	mc := &MonteCarlo{
		baseConfig:    base,
		distributions: distributions,
		iterations:    iterations,
		workers:       1,
		rng:           NewPartitionedRNG(NewSimulationKey(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(mc)
	}
	if mc.outputDir == "" {
		mc.outputDir = filepath.Join("results", "monte_carlo_"+time.Now().Format("20060102_150405"))
	}
	return mc
}

// OutputDir returns where artifacts are persisted.
func (mc *MonteCarlo) OutputDir() string { return mc.outputDir }

// Records returns one record per iteration, in iteration order.
func (mc *MonteCarlo) Records() []RunRecord { return mc.records }

// Samples returns the sampled parameter set of every iteration, including
// failed ones.
func (mc *MonteCarlo) Samples() []SampledParams { return mc.samples }

// Succeeded counts iterations that produced results.
func (mc *MonteCarlo) Succeeded() int {
	n := 0
	for _, rec := range mc.records {
		if rec.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts iterations that errored.
func (mc *MonteCarlo) Failed() int { return len(mc.records) - mc.Succeeded() }

// Run executes the experiment and returns the summary-statistics frame.
// Configuration errors (malformed distributions, paths absent from the base
// config) abort the whole run; per-iteration simulation failures do not.
// As a side effect the summary and parameter samples are persisted to
// OutputDir, plus per-run artifacts when SaveAllRuns is set.
func (mc *MonteCarlo) Run(factory EngineFactory) (*Frame, error) {
	for _, d := range mc.distributions {
		if _, err := GetPath(mc.baseConfig, d.Path); err != nil {
			return nil, fmt.Errorf("distribution path %q not in base config: %w", d.PathString(), err)
		}
	}

	mc.samples = make([]SampledParams, mc.iterations)
	mc.records = make([]RunRecord, mc.iterations)

	src := mc.rng.Source(SubsystemSampling)
	for i := 0; i < mc.iterations; i++ {
		params := make(SampledParams, len(mc.distributions))
		for _, d := range mc.distributions {
			v, err := d.Sample(src)
			if err != nil {
				return nil, err
			}
			params[d.PathString()] = v
		}
		mc.samples[i] = params
	}

	mc.runIterations(factory)

	logrus.Infof("monte carlo completed with %d/%d successful runs", mc.Succeeded(), mc.iterations)

	summary := mc.Summarize()
	if err := mc.persist(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (mc *MonteCarlo) runIterations(factory EngineFactory) {
	workers := mc.workers
	if workers < 1 {
		workers = 1
	}
	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				// Records are indexed by iteration, so workers write
				// disjoint elements and aggregation is order-independent.
				mc.records[i] = mc.runOne(i, factory)
			}
		}()
	}
	for i := 0; i < mc.iterations; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

func (mc *MonteCarlo) runOne(i int, factory EngineFactory) RunRecord {
	rec := RunRecord{Iteration: i, Parameters: mc.samples[i]}

	cfg := mc.baseConfig.DeepCopy()
	for _, d := range mc.distributions {
		if err := SetPath(cfg, d.Path, mc.samples[i][d.PathString()]); err != nil {
			rec.Err = fmt.Errorf("apply sample %q: %w", d.PathString(), err)
			logrus.Errorf("monte carlo iteration %d failed: %v", i, rec.Err)
			return rec
		}
	}

	engine, err := factory(cfg)
	if err != nil {
		rec.Err = fmt.Errorf("build engine: %w", err)
		logrus.Errorf("monte carlo iteration %d failed: %v", i, rec.Err)
		return rec
	}
	if err := engine.Run(nil); err != nil {
		rec.Err = err
		logrus.Errorf("monte carlo iteration %d failed: %v", i, err)
		return rec
	}
	rec.Results = engine.Results()
	return rec
}

// summaryColumns is the schema of the summary-statistics frame.
var summaryColumns = []string{"metric", "mean", "median", "std", "min", "max", "p10", "p25", "p75", "p90", "count"}

// Summarize computes descriptive statistics per metric over successful
// iterations. A metric is <component name>.<column name>, valued at the
// final row of that component's result table; non-numeric finals are
// excluded.
func (mc *MonteCarlo) Summarize() *Frame {
	metrics := mc.collectMetricValues()
	frame := NewFrame(summaryColumns...)
	if len(metrics) == 0 {
		logrus.Warn("no monte carlo results to summarize")
		return frame
	}

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		byIteration := metrics[name]
		values := make([]float64, 0, len(byIteration))
		iterations := make([]int, 0, len(byIteration))
		for it := range byIteration {
			iterations = append(iterations, it)
		}
		sort.Ints(iterations)
		for _, it := range iterations {
			values = append(values, byIteration[it])
		}

		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		std := 0.0
		if len(values) > 1 {
			std = stat.StdDev(values, nil)
		}
		frame.Append(Row{
			"metric": name,
			"mean":   stat.Mean(values, nil),
			"median": stat.Quantile(0.5, stat.LinInterp, sorted, nil),
			"std":    std,
			"min":    sorted[0],
			"max":    sorted[len(sorted)-1],
			"p10":    stat.Quantile(0.10, stat.LinInterp, sorted, nil),
			"p25":    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
			"p75":    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
			"p90":    stat.Quantile(0.90, stat.LinInterp, sorted, nil),
			"count":  len(values),
		})
	}
	return frame
}

// collectMetricValues gathers, for every metric, the final-row numeric value
// of each successful iteration, keyed by iteration index.
func (mc *MonteCarlo) collectMetricValues() map[string]map[int]float64 {
	metrics := make(map[string]map[int]float64)
	for _, rec := range mc.records {
		if rec.Err != nil {
			continue
		}
		for component, frame := range rec.Results {
			if frame == nil || frame.Empty() {
				continue
			}
			last := frame.Last()
			for _, col := range frame.Columns() {
				v, ok := asFloat(last[col])
				if !ok {
					continue
				}
				key := component + "." + col
				if metrics[key] == nil {
					metrics[key] = make(map[int]float64)
				}
				metrics[key][rec.Iteration] = v
			}
		}
	}
	return metrics
}

func (mc *MonteCarlo) persist(summary *Frame) error {
	if err := os.MkdirAll(mc.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := summary.SaveCSV(filepath.Join(mc.outputDir, "summary_statistics.csv")); err != nil {
		return err
	}
	if err := mc.persistSamples(); err != nil {
		return err
	}
	if mc.saveAllRuns {
		if err := mc.persistRuns(); err != nil {
			return err
		}
	}
	logrus.Infof("monte carlo artifacts saved to %s", mc.outputDir)
	return nil
}

// persistSamples writes one row per iteration, one column per sampled
// parameter path.
func (mc *MonteCarlo) persistSamples() error {
	cols := make([]string, 0, len(mc.distributions)+1)
	cols = append(cols, "iteration")
	for _, d := range mc.distributions {
		cols = append(cols, d.PathString())
	}
	frame := NewFrame(cols...)
	for i, params := range mc.samples {
		row := Row{"iteration": i}
		for k, v := range params {
			row[k] = v
		}
		frame.Append(row)
	}
	return frame.SaveCSV(filepath.Join(mc.outputDir, "parameter_samples.csv"))
}

// persistRuns writes one subdirectory per successful iteration holding its
// sampled parameters and each component's result table.
func (mc *MonteCarlo) persistRuns() error {
	for _, rec := range mc.records {
		if rec.Err != nil {
			continue
		}
		runDir := filepath.Join(mc.outputDir, "all_runs", fmt.Sprintf("run_%04d", rec.Iteration))
		if err := os.MkdirAll(runDir, 0o755); err != nil {
			return fmt.Errorf("create run dir: %w", err)
		}

		params := NewFrame("parameter", "value")
		keys := make([]string, 0, len(rec.Parameters))
		for k := range rec.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			params.Append(Row{"parameter": k, "value": rec.Parameters[k]})
		}
		if err := params.SaveCSV(filepath.Join(runDir, "parameters.csv")); err != nil {
			return err
		}

		for component, frame := range rec.Results {
			if frame == nil || frame.Empty() {
				continue
			}
			if err := frame.SaveCSV(filepath.Join(runDir, safeFileName(component)+".csv")); err != nil {
				return err
			}
		}
	}
	return nil
}
