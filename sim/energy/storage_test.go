package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageDeployment_LinearBuildOut(t *testing.T) {
	// GIVEN 10 GW of batteries adding 5 GW a year at a 2.0 energy ratio
	cfg := testConfig(t)
	s, err := NewStorageDeployment(cfg)
	require.NoError(t, err)
	e := newTestEngine(t, 2025, 2026, s)

	// WHEN the engine runs without a grid component
	require.NoError(t, e.Run(nil))

	frame := s.Results()
	require.Equal(t, 2, frame.Len())

	p1, ok := frame.Float(0, "bess_power_gw")
	require.True(t, ok)
	assert.Equal(t, 15.0, p1)
	en1, ok := frame.Float(0, "bess_energy_gwh")
	require.True(t, ok)
	assert.Equal(t, 30.0, en1)

	p2, ok := frame.Float(1, "bess_power_gw")
	require.True(t, ok)
	assert.Equal(t, 20.0, p2)

	// THEN the curtailment column stays empty rather than reporting zero
	_, ok = frame.Float(0, "curtailment_rate")
	assert.False(t, ok)
}

func TestStorageDeployment_TracksGridCurtailment(t *testing.T) {
	cfg := testConfig(t)
	capacity, err := NewCapacityExpansion(cfg)
	require.NoError(t, err)
	grid, err := NewGridIntegration(cfg)
	require.NoError(t, err)
	s, err := NewStorageDeployment(cfg)
	require.NoError(t, err)
	e := newTestEngine(t, 2025, 2025, capacity, grid, s)
	require.NoError(t, e.Run(nil))

	// Storage steps after the grid, so it records this year's rate
	got, ok := s.Results().Float(0, "curtailment_rate")
	require.True(t, ok)
	assert.InDelta(t, (165.0-160.0)/165.0*100, got, 1e-9)
}
