// sim/energy/manufacturing.go
package energy

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// ManufacturingCapacity tracks domestic production capacity for solar
// modules and wind components against the deployment demand implied by the
// capacity component's annual additions, flagging shortages.
type ManufacturingCapacity struct {
	sim.BaseComponent

	initialSolarGW float64
	initialWindGW  float64
	growthRate     float64

	prodSolarGW float64
	prodWindGW  float64
	capacity    *CapacityExpansion
}

// NewManufacturingCapacity reads production parameters from the
// manufacturing area of the configuration.
func NewManufacturingCapacity(cfg sim.Config) (*ManufacturingCapacity, error) {
	m := &ManufacturingCapacity{
		BaseComponent: sim.NewBaseComponent(ManufacturingName,
			"year", "prod_solar_gw", "prod_wind_gw", "shortage_solar_gw", "shortage_wind_gw"),
	}
	var err error
	if m.initialSolarGW, err = cfg.Float("manufacturing", "initial_solar_capacity_gw"); err != nil {
		return nil, err
	}
	if m.initialWindGW, err = cfg.Float("manufacturing", "initial_wind_capacity_gw"); err != nil {
		return nil, err
	}
	if m.growthRate, err = cfg.Float("manufacturing", "annual_growth_rate"); err != nil {
		return nil, err
	}
	return m, nil
}

// Initialize resolves the demand source by name prefix; any single
// component whose name starts with "Renewable Capacity" qualifies.
func (m *ManufacturingCapacity) Initialize() error {
	comp, err := m.Engine().Resolve("Renewable Capacity")
	if err != nil {
		return err
	}
	cap, ok := comp.(*CapacityExpansion)
	if !ok {
		return fmt.Errorf("component %q is not a capacity expansion model", comp.Name())
	}
	m.capacity = cap
	m.prodSolarGW = m.initialSolarGW
	m.prodWindGW = m.initialWindGW
	return nil
}

func (m *ManufacturingCapacity) Step(year int) error {
	demandSolar, demandWind := annualAdditions(m.capacity.Results())

	shortageSolar := math.Max(0, demandSolar-m.prodSolarGW)
	shortageWind := math.Max(0, demandWind-m.prodWindGW)

	// Production lines expand regardless of this year's shortfall.
	m.prodSolarGW *= 1 + m.growthRate
	m.prodWindGW *= 1 + m.growthRate

	m.Results().Append(sim.Row{
		"year":              year,
		"prod_solar_gw":     m.prodSolarGW,
		"prod_wind_gw":      m.prodWindGW,
		"shortage_solar_gw": shortageSolar,
		"shortage_wind_gw":  shortageWind,
	})
	return nil
}

func (m *ManufacturingCapacity) Finalize() error {
	logrus.Infof("%s: final production solar %.1f GW, wind %.1f GW", m.Name(), m.prodSolarGW, m.prodWindGW)
	return nil
}

// annualAdditions derives this year's solar and wind build demand from the
// capacity component's result table: the delta between its last two rows.
// The component being read must already have stepped this year, which the
// registration order guarantees.
func annualAdditions(frame *sim.Frame) (solarGW, windGW float64) {
	n := frame.Len()
	if n == 0 {
		return 0, 0
	}
	latestSolar, _ := frame.Float(n-1, "solar_gw")
	latestWind, _ := frame.Float(n-1, "wind_gw")
	if n == 1 {
		return 0, 0
	}
	prevSolar, _ := frame.Float(n-2, "solar_gw")
	prevWind, _ := frame.Float(n-2, "wind_gw")
	return latestSolar - prevSolar, latestWind - prevWind
}
