// sim/energy/finance.go
package energy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// GreenFinance models green bond issuance and green credit allocation and
// the capacity additions that investment could fund.
type GreenFinance struct {
	sim.BaseComponent

	initialBondsBRMB  float64
	initialCreditBRMB float64
	effectiveness     float64

	bondsBRMB  float64
	creditBRMB float64
	capacity   *CapacityExpansion
}

// NewGreenFinance reads financing parameters from the finance area of the
// configuration.
func NewGreenFinance(cfg sim.Config) (*GreenFinance, error) {
	f := &GreenFinance{
		BaseComponent: sim.NewBaseComponent(FinanceName,
			"year", "bonds_b_rmb", "credit_b_rmb", "total_green_investment_b_rmb", "investment_driven_capacity_gw"),
	}
	var err error
	if f.initialBondsBRMB, err = cfg.Float("finance", "bonds_initial"); err != nil {
		return nil, err
	}
	if f.initialCreditBRMB, err = cfg.Float("finance", "credit_initial"); err != nil {
		return nil, err
	}
	if f.effectiveness, err = cfg.Float("finance", "investment_effectiveness"); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize resolves the capacity component whose growth this financing
// underwrites. GreenFinance must be registered after CapacityExpansion.
func (f *GreenFinance) Initialize() error {
	comp, err := f.Engine().Resolve(CapacityName)
	if err != nil {
		return err
	}
	cap, ok := comp.(*CapacityExpansion)
	if !ok {
		return fmt.Errorf("component %q is not a capacity expansion model", CapacityName)
	}
	f.capacity = cap
	f.bondsBRMB = f.initialBondsBRMB
	f.creditBRMB = f.initialCreditBRMB
	logrus.Infof("%s: initial bonds %.0fB RMB, credit %.0fB RMB", f.Name(), f.bondsBRMB, f.creditBRMB)
	return nil
}

func (f *GreenFinance) Step(year int) error {
	f.bondsBRMB *= 1.20
	f.creditBRMB *= 1.15

	totalInvestment := f.bondsBRMB + f.creditBRMB
	drivenCapacityGW := totalInvestment * f.effectiveness

	f.Results().Append(sim.Row{
		"year":                          year,
		"bonds_b_rmb":                   f.bondsBRMB,
		"credit_b_rmb":                  f.creditBRMB,
		"total_green_investment_b_rmb":  totalInvestment,
		"investment_driven_capacity_gw": drivenCapacityGW,
	})
	return nil
}

func (f *GreenFinance) Finalize() error {
	logrus.Infof("%s: final bonds %.1fB RMB, credit %.1fB RMB", f.Name(), f.bondsBRMB, f.creditBRMB)
	return nil
}
