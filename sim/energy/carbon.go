// sim/energy/carbon.go
package energy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// hoursPerYear converts GW of capacity to GWh of annual generation at full
// utilization, before the capacity factor.
const hoursPerYear = 8760

// CarbonPathways accounts for the emissions displaced by renewable
// generation: installed capacity times capacity factor gives generation,
// which avoids the grid's marginal emission factor.
type CarbonPathways struct {
	sim.BaseComponent

	emissionFactorTPerMWh float64
	capacityFactor        float64

	cumulativeAvoidedMt float64
	capacity            *CapacityExpansion
}

// NewCarbonPathways reads accounting parameters from the carbon area of the
// configuration.
func NewCarbonPathways(cfg sim.Config) (*CarbonPathways, error) {
	c := &CarbonPathways{
		BaseComponent: sim.NewBaseComponent(CarbonName,
			"year", "renewable_twh", "avoided_mt_co2", "cumulative_avoided_mt"),
	}
	var err error
	if c.emissionFactorTPerMWh, err = cfg.Float("carbon", "grid_emission_factor_t_per_mwh"); err != nil {
		return nil, err
	}
	if c.capacityFactor, err = cfg.Float("carbon", "capacity_factor"); err != nil {
		return nil, err
	}
	return c, nil
}

// Initialize resolves the capacity component. CarbonPathways must be
// registered after CapacityExpansion.
func (c *CarbonPathways) Initialize() error {
	comp, err := c.Engine().Resolve(CapacityName)
	if err != nil {
		return err
	}
	cap, ok := comp.(*CapacityExpansion)
	if !ok {
		return fmt.Errorf("component %q is not a capacity expansion model", CapacityName)
	}
	c.capacity = cap
	c.cumulativeAvoidedMt = 0
	return nil
}

func (c *CarbonPathways) Step(year int) error {
	// GW * h * CF = GWh; /1000 = TWh.
	generationTWh := c.capacity.TotalCapacityGW() * hoursPerYear * c.capacityFactor / 1000
	// TWh = 1e6 MWh, t/MWh * 1e6 = Mt per TWh.
	avoidedMt := generationTWh * c.emissionFactorTPerMWh
	c.cumulativeAvoidedMt += avoidedMt

	c.Results().Append(sim.Row{
		"year":                  year,
		"renewable_twh":         generationTWh,
		"avoided_mt_co2":        avoidedMt,
		"cumulative_avoided_mt": c.cumulativeAvoidedMt,
	})
	return nil
}

func (c *CarbonPathways) Finalize() error {
	logrus.Infof("%s: cumulative avoided emissions %.1f Mt CO2", c.Name(), c.cumulativeAvoidedMt)
	return nil
}
