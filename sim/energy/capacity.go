// sim/energy/capacity.go
package energy

import (
	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// CapacityExpansion models the growth of installed solar and wind capacity.
// Annual additions follow configured growth rates, amplified by the
// innovation boost other components publish on the shared state bus.
type CapacityExpansion struct {
	sim.BaseComponent

	initialSolarGW float64
	initialWindGW  float64
	solarGrowth    float64
	windGrowth     float64

	solarGW float64
	windGW  float64
}

// NewCapacityExpansion reads initial capacities and growth rates from the
// renewable_capacity area of the configuration.
func NewCapacityExpansion(cfg sim.Config) (*CapacityExpansion, error) {
	c := &CapacityExpansion{
		BaseComponent: sim.NewBaseComponent(CapacityName, "year", "solar_gw", "wind_gw"),
	}
	var err error
	if c.initialSolarGW, err = cfg.Float("renewable_capacity", "initial", "solar"); err != nil {
		return nil, err
	}
	if c.initialWindGW, err = cfg.Float("renewable_capacity", "initial", "wind"); err != nil {
		return nil, err
	}
	if c.solarGrowth, err = cfg.Float("renewable_capacity", "growth_rates", "solar"); err != nil {
		return nil, err
	}
	if c.windGrowth, err = cfg.Float("renewable_capacity", "growth_rates", "wind"); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CapacityExpansion) Initialize() error {
	c.solarGW = c.initialSolarGW
	c.windGW = c.initialWindGW
	logrus.Infof("%s: initial solar %.1f GW, wind %.1f GW", c.Name(), c.solarGW, c.windGW)
	return nil
}

func (c *CapacityExpansion) Step(year int) error {
	boost := c.Engine().State.Float(StateInnovationBoost, 1.0)

	c.solarGW += c.solarGW * c.solarGrowth * boost
	c.windGW += c.windGW * c.windGrowth * boost

	c.Results().Append(sim.Row{
		"year":     year,
		"solar_gw": c.solarGW,
		"wind_gw":  c.windGW,
	})
	return nil
}

func (c *CapacityExpansion) Finalize() error {
	logrus.Infof("%s: final solar %.1f GW, wind %.1f GW", c.Name(), c.solarGW, c.windGW)
	return nil
}

// TotalCapacityGW returns the combined installed solar and wind capacity,
// the signal most downstream components consume.
func (c *CapacityExpansion) TotalCapacityGW() float64 {
	return c.solarGW + c.windGW
}

// SolarGW returns the current installed solar capacity.
func (c *CapacityExpansion) SolarGW() float64 { return c.solarGW }

// WindGW returns the current installed wind capacity.
func (c *CapacityExpansion) WindGW() float64 { return c.windGW }
