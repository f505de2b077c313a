// sim/energy/installation.go
package energy

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// InstallationCapacity compares annual build demand against on-the-ground
// installation capability. Demand beyond capacity becomes a backlog that
// carries into following years.
type InstallationCapacity struct {
	sim.BaseComponent

	initialCapacityGW float64
	growthRate        float64

	installCapacityGW float64
	backlogGW         float64
	capacity          *CapacityExpansion
}

// NewInstallationCapacity reads workforce parameters from the installation
// area of the configuration.
func NewInstallationCapacity(cfg sim.Config) (*InstallationCapacity, error) {
	ic := &InstallationCapacity{
		BaseComponent: sim.NewBaseComponent(InstallationName,
			"year", "install_capacity_gw", "demand_gw", "backlog_gw"),
	}
	var err error
	if ic.initialCapacityGW, err = cfg.Float("installation", "initial_capacity_gw"); err != nil {
		return nil, err
	}
	if ic.growthRate, err = cfg.Float("installation", "annual_growth_rate"); err != nil {
		return nil, err
	}
	return ic, nil
}

// Initialize resolves the capacity component. InstallationCapacity must be
// registered after CapacityExpansion.
func (ic *InstallationCapacity) Initialize() error {
	comp, err := ic.Engine().Resolve(CapacityName)
	if err != nil {
		return err
	}
	cap, ok := comp.(*CapacityExpansion)
	if !ok {
		return fmt.Errorf("component %q is not a capacity expansion model", CapacityName)
	}
	ic.capacity = cap
	ic.installCapacityGW = ic.initialCapacityGW
	ic.backlogGW = 0
	return nil
}

func (ic *InstallationCapacity) Step(year int) error {
	demandSolar, demandWind := annualAdditions(ic.capacity.Results())
	totalDemand := demandSolar + demandWind + ic.backlogGW

	ic.backlogGW = math.Max(0, totalDemand-ic.installCapacityGW)

	// Contractor capacity grows after this year's work is allocated.
	ic.installCapacityGW *= 1 + ic.growthRate

	ic.Results().Append(sim.Row{
		"year":                year,
		"install_capacity_gw": ic.installCapacityGW,
		"demand_gw":           totalDemand,
		"backlog_gw":          ic.backlogGW,
	})
	return nil
}

func (ic *InstallationCapacity) Finalize() error {
	logrus.Infof("%s: final capacity %.1f GW, backlog %.1f GW", ic.Name(), ic.installCapacityGW, ic.backlogGW)
	return nil
}
