// sim/energy/storage.go
package energy

import (
	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// StorageDeployment tracks utility-scale battery build-out (power and
// energy capacity) and records the grid curtailment it could absorb. The
// grid component is an optional dependency: without it the curtailment
// column is left empty.
type StorageDeployment struct {
	sim.BaseComponent

	initialPowerGW   float64
	annualAdditionGW float64
	energyPowerRatio float64

	powerGW   float64
	energyGWh float64
	grid      *GridIntegration
}

// NewStorageDeployment reads battery parameters from the bess area of the
// configuration.
func NewStorageDeployment(cfg sim.Config) (*StorageDeployment, error) {
	s := &StorageDeployment{
		BaseComponent: sim.NewBaseComponent(StorageName,
			"year", "bess_power_gw", "bess_energy_gwh", "curtailment_rate"),
	}
	var err error
	if s.initialPowerGW, err = cfg.Float("bess", "initial_power_gw"); err != nil {
		return nil, err
	}
	if s.annualAdditionGW, err = cfg.Float("bess", "annual_addition_gw"); err != nil {
		return nil, err
	}
	if s.energyPowerRatio, err = cfg.Float("bess", "energy_power_ratio"); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StorageDeployment) Initialize() error {
	if comp, err := s.Engine().Resolve(GridName); err == nil {
		if grid, ok := comp.(*GridIntegration); ok {
			s.grid = grid
		}
	} else {
		logrus.Debugf("%s: no grid component, curtailment tracking disabled: %v", s.Name(), err)
	}
	s.powerGW = s.initialPowerGW
	s.energyGWh = s.powerGW * s.energyPowerRatio
	return nil
}

func (s *StorageDeployment) Step(year int) error {
	s.powerGW += s.annualAdditionGW
	s.energyGWh = s.powerGW * s.energyPowerRatio

	var curtailment any
	if s.grid != nil {
		curtailment = s.grid.LatestCurtailmentRate()
	}

	s.Results().Append(sim.Row{
		"year":             year,
		"bess_power_gw":    s.powerGW,
		"bess_energy_gwh":  s.energyGWh,
		"curtailment_rate": curtailment,
	})
	return nil
}

func (s *StorageDeployment) Finalize() error {
	logrus.Infof("%s: final power %.1f GW, energy %.0f GWh", s.Name(), s.powerGW, s.energyGWh)
	return nil
}
