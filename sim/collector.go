// sim/collector.go
package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Collector concatenates the result tables of all registered components into
// a single tagged frame for export. Components with empty frames are
// skipped.
type Collector struct {
	components []Component
}

// NewCollector creates a collector over the given components, typically
// Engine.Components() after a run.
func NewCollector(components []Component) *Collector {
	return &Collector{components: components}
}

// Collect merges all non-empty component frames. The combined frame has a
// leading "component" tag column followed by the union of the component
// columns in first-seen order.
func (c *Collector) Collect() *Frame {
	columns := []string{"component"}
	seen := map[string]bool{"component": true}
	var tagged []Row

	for _, comp := range c.components {
		frame := comp.Results()
		if frame == nil || frame.Empty() {
			continue
		}
		for _, col := range frame.Columns() {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
		for i := 0; i < frame.Len(); i++ {
			row := Row{"component": comp.Name()}
			for k, v := range frame.Row(i) {
				row[k] = v
			}
			tagged = append(tagged, row)
		}
	}

	combined := NewFrame(columns...)
	for _, row := range tagged {
		combined.Append(row)
	}
	return combined
}

// Persist collects and writes the combined KPI table under dir, returning
// the file path. An empty collection writes nothing and returns "".
func (c *Collector) Persist(dir string) (string, error) {
	combined := c.Collect()
	if combined.Empty() {
		logrus.Warn("no KPI data collected")
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(dir, "kpis.csv")
	if err := combined.SaveCSV(path); err != nil {
		return "", err
	}
	logrus.Infof("KPI table written to %s", path)
	return path, nil
}
