// sim/energy/grid.go
package energy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// GridIntegration models how much renewable capacity the transmission grid
// can absorb. Capacity above the grid's transmission limit is curtailed;
// the grid itself expands by a configured annual rate.
type GridIntegration struct {
	sim.BaseComponent

	initialTransmissionGW float64
	expansionRate         float64

	transmissionGW  float64
	curtailmentRate float64
	capacity        *CapacityExpansion
}

// NewGridIntegration reads transmission parameters from the grid area of
// the configuration.
func NewGridIntegration(cfg sim.Config) (*GridIntegration, error) {
	g := &GridIntegration{
		BaseComponent: sim.NewBaseComponent(GridName, "year", "grid_capacity_gw", "curtailment_rate"),
	}
	var err error
	if g.initialTransmissionGW, err = cfg.Float("grid", "initial_transmission_gw"); err != nil {
		return nil, err
	}
	if g.expansionRate, err = cfg.Float("grid", "annual_expansion_rate"); err != nil {
		return nil, err
	}
	return g, nil
}

// Initialize resolves the capacity component. GridIntegration must be
// registered after CapacityExpansion.
func (g *GridIntegration) Initialize() error {
	comp, err := g.Engine().Resolve(CapacityName)
	if err != nil {
		return err
	}
	cap, ok := comp.(*CapacityExpansion)
	if !ok {
		return fmt.Errorf("component %q is not a capacity expansion model", CapacityName)
	}
	g.capacity = cap
	g.transmissionGW = g.initialTransmissionGW
	g.curtailmentRate = 0
	logrus.Infof("%s: initial transmission capacity %.1f GW", g.Name(), g.transmissionGW)
	return nil
}

func (g *GridIntegration) Step(year int) error {
	total := g.capacity.TotalCapacityGW()

	if total > g.transmissionGW {
		g.curtailmentRate = (total - g.transmissionGW) / total * 100
	} else {
		g.curtailmentRate = 0
	}

	g.Results().Append(sim.Row{
		"year":             year,
		"grid_capacity_gw": g.transmissionGW,
		"curtailment_rate": g.curtailmentRate,
	})

	// Grid expansion lands after this year's curtailment assessment.
	g.transmissionGW *= 1 + g.expansionRate
	return nil
}

func (g *GridIntegration) Finalize() error {
	logrus.Infof("%s: final transmission capacity %.1f GW", g.Name(), g.transmissionGW)
	return nil
}

// LatestCurtailmentRate returns the most recent curtailment rate in percent.
func (g *GridIntegration) LatestCurtailmentRate() float64 {
	return g.curtailmentRate
}
