package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEVAdoption_FleetDemand(t *testing.T) {
	// GIVEN a static fleet of 10M vehicles at 0.15 kWh/km over 10000 km/yr
	// with 30% of charging manageable
	cfg := testConfig(t)
	ev, err := NewEVAdoption(cfg)
	require.NoError(t, err)
	e := newTestEngine(t, 2025, 2025, ev)

	// WHEN the engine runs
	require.NoError(t, e.Run(nil))

	frame := ev.Results()
	require.Equal(t, 1, frame.Len())

	stock, ok := frame.Float(0, "ev_stock_million")
	require.True(t, ok)
	assert.Equal(t, 10.0, stock)

	// 10e6 vehicles * 10000 km * 0.15 kWh/km = 15 TWh
	demand, ok := frame.Float(0, "ev_demand_twh")
	require.True(t, ok)
	assert.InDelta(t, 15.0, demand, 1e-9)

	flexible, ok := frame.Float(0, "flexible_load_twh")
	require.True(t, ok)
	assert.InDelta(t, 4.5, flexible, 1e-9)
}

func TestEVAdoption_StockGrowth(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.Set(0.25, "ev", "annual_growth_rate"))

	ev, err := NewEVAdoption(cfg)
	require.NoError(t, err)
	e := newTestEngine(t, 2025, 2026, ev)
	require.NoError(t, e.Run(nil))

	s1, ok := ev.Results().Float(0, "ev_stock_million")
	require.True(t, ok)
	assert.InDelta(t, 12.5, s1, 1e-9)
	s2, ok := ev.Results().Float(1, "ev_stock_million")
	require.True(t, ok)
	assert.InDelta(t, 15.625, s2, 1e-9)
}
