// sim/sensitivity.go
package sim

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minSensitivityValues is the minimum number of collected values a metric
// needs before it is analyzed. Fewer is not an error; the metric is just
// excluded.
const minSensitivityValues = 10

// sensitivityColumns is the schema of each per-metric correlation table.
var sensitivityColumns = []string{"parameter", "correlation", "p_value", "abs_correlation"}

// GenerateSensitivityAnalysis ranks, for every qualifying metric, the
// sampled parameters by the absolute Pearson correlation between parameter
// draws and the metric's final values across iterations. Each table is
// persisted as sensitivity_<metric>.csv with path separators replaced by
// underscores, and the tables are returned keyed by metric name.
//
// Parameters with non-numeric draws (discrete string values) and pairs with
// fewer than 2 aligned points are skipped.
func (mc *MonteCarlo) GenerateSensitivityAnalysis() (map[string]*Frame, error) {
	if len(mc.records) == 0 || len(mc.samples) == 0 {
		logrus.Warn("no monte carlo results for sensitivity analysis")
		return map[string]*Frame{}, nil
	}

	metrics := mc.collectMetricValues()
	reports := make(map[string]*Frame)

	for metric, byIteration := range metrics {
		if len(byIteration) < minSensitivityValues {
			continue
		}
		frame := mc.correlate(byIteration)
		if frame.Empty() {
			continue
		}
		reports[metric] = frame
	}

	for metric, frame := range reports {
		name := "sensitivity_" + safeFileName(metric) + ".csv"
		if err := frame.SaveCSV(filepath.Join(mc.outputDir, name)); err != nil {
			return nil, fmt.Errorf("persist sensitivity for %s: %w", metric, err)
		}
	}
	logrus.Infof("sensitivity analysis saved for %d metrics to %s", len(reports), mc.outputDir)
	return reports, nil
}

// correlate builds one metric's ranked correlation table against every
// numeric parameter, aligned by iteration index.
func (mc *MonteCarlo) correlate(byIteration map[int]float64) *Frame {
	iterations := make([]int, 0, len(byIteration))
	for it := range byIteration {
		iterations = append(iterations, it)
	}
	sort.Ints(iterations)

	type ranked struct {
		parameter string
		r, p      float64
	}
	var rows []ranked

	for _, d := range mc.distributions {
		param := d.PathString()
		var xs, ys []float64
		for _, it := range iterations {
			x, ok := asFloat(mc.samples[it][param])
			if !ok {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, byIteration[it])
		}
		if len(xs) < 2 {
			continue
		}
		r := stat.Correlation(xs, ys, nil)
		if math.IsNaN(r) {
			continue
		}
		rows = append(rows, ranked{parameter: param, r: r, p: pearsonPValue(r, len(xs))})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return math.Abs(rows[i].r) > math.Abs(rows[j].r)
	})

	frame := NewFrame(sensitivityColumns...)
	for _, row := range rows {
		frame.Append(Row{
			"parameter":       row.parameter,
			"correlation":     row.r,
			"p_value":         row.p,
			"abs_correlation": math.Abs(row.r),
		})
	}
	return frame
}

// pearsonPValue computes the two-sided p-value of a Pearson correlation
// coefficient via the exact t transform with n-2 degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if n <= 2 {
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.CDF(-math.Abs(t))
}

// safeFileName makes a metric or component name filesystem-friendly.
func safeFileName(name string) string {
	name = strings.ReplaceAll(name, ".", "_")
	return strings.ReplaceAll(name, " ", "_")
}
