package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Collect(t *testing.T) {
	// GIVEN two components with results and one that never produced any
	var log []string
	a := newScripted("Alpha", &log)
	a.Results().Append(Row{"year": 2025, "value": 1.0})
	a.Results().Append(Row{"year": 2026, "value": 2.0})

	b := &valueComponent{BaseComponent: NewBaseComponent("Beta", "year", "extra")}
	b.Results().Append(Row{"year": 2025, "extra": 9.0})

	empty := newScripted("Empty", &log)

	// WHEN collecting
	combined := NewCollector([]Component{a, b, empty}).Collect()

	// THEN rows are tagged by component and empty frames are skipped
	assert.Equal(t, []string{"component", "year", "value", "extra"}, combined.Columns())
	require.Equal(t, 3, combined.Len())
	assert.Equal(t, "Alpha", combined.Row(0)["component"])
	assert.Equal(t, "Alpha", combined.Row(1)["component"])
	assert.Equal(t, "Beta", combined.Row(2)["component"])

	v, ok := combined.Float(2, "extra")
	require.True(t, ok)
	assert.Equal(t, 9.0, v)
	_, ok = combined.Float(0, "extra")
	assert.False(t, ok)
}

func TestCollector_Persist(t *testing.T) {
	var log []string
	a := newScripted("Alpha", &log)
	a.Results().Append(Row{"year": 2025, "value": 1.0})

	dir := filepath.Join(t.TempDir(), "out")
	path, err := NewCollector([]Component{a}).Persist(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kpis.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "component,year,value\nAlpha,2025,1\n", string(data))
}

func TestCollector_Persist_NothingCollected(t *testing.T) {
	var log []string
	dir := filepath.Join(t.TempDir(), "out")
	path, err := NewCollector([]Component{newScripted("Empty", &log)}).Persist(dir)
	require.NoError(t, err)
	assert.Equal(t, "", path)

	_, statErr := os.Stat(filepath.Join(dir, "kpis.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
