// sim/energy/ev.go
package energy

import (
	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// EVAdoption projects electric vehicle stock growth, the electricity demand
// the fleet adds, and the share of that load available for managed
// charging.
type EVAdoption struct {
	sim.BaseComponent

	initialStockMillion float64
	growthRate          float64
	consumptionKWhPerKm float64
	distanceKm          float64
	managedShare        float64

	stockMillion float64
}

// NewEVAdoption reads fleet parameters from the ev area of the
// configuration.
func NewEVAdoption(cfg sim.Config) (*EVAdoption, error) {
	e := &EVAdoption{
		BaseComponent: sim.NewBaseComponent(EVName,
			"year", "ev_stock_million", "ev_demand_twh", "flexible_load_twh"),
	}
	var err error
	if e.initialStockMillion, err = cfg.Float("ev", "initial_stock_million"); err != nil {
		return nil, err
	}
	if e.growthRate, err = cfg.Float("ev", "annual_growth_rate"); err != nil {
		return nil, err
	}
	if e.consumptionKWhPerKm, err = cfg.Float("ev", "avg_consumption_kwh_per_km"); err != nil {
		return nil, err
	}
	if e.distanceKm, err = cfg.Float("ev", "avg_distance_km"); err != nil {
		return nil, err
	}
	if e.managedShare, err = cfg.Float("ev", "managed_charging_share"); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *EVAdoption) Initialize() error {
	e.stockMillion = e.initialStockMillion
	return nil
}

func (e *EVAdoption) Step(year int) error {
	e.stockMillion *= 1 + e.growthRate

	demandKWh := e.stockMillion * 1e6 * e.distanceKm * e.consumptionKWhPerKm
	demandTWh := demandKWh / 1e9
	flexibleTWh := demandTWh * e.managedShare

	e.Results().Append(sim.Row{
		"year":              year,
		"ev_stock_million":  e.stockMillion,
		"ev_demand_twh":     demandTWh,
		"flexible_load_twh": flexibleTWh,
	})
	return nil
}

func (e *EVAdoption) Finalize() error {
	logrus.Infof("%s: final stock %.1fM vehicles", e.Name(), e.stockMillion)
	return nil
}
