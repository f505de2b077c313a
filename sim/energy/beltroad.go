// sim/energy/beltroad.go
package energy

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/dragonwind-sim/dragonwind/sim"
)

// BeltRoadSpillover models how green investment in belt-and-road projects
// feeds back into domestic innovation. The resulting boost factor is
// published on the shared state bus for CapacityExpansion to read on its
// next step.
type BeltRoadSpillover struct {
	sim.BaseComponent

	totalInvestmentBUSD float64
	initialGreenShare   float64
	boostFactor         float64

	greenShare float64
}

// NewBeltRoadSpillover reads investment parameters from the bri area of the
// configuration.
func NewBeltRoadSpillover(cfg sim.Config) (*BeltRoadSpillover, error) {
	b := &BeltRoadSpillover{
		BaseComponent: sim.NewBaseComponent(BeltRoadName,
			"year", "green_investment_b_usd", "green_share", "innovation_boost"),
	}
	var err error
	if b.totalInvestmentBUSD, err = cfg.Float("bri", "total_investment_b_usd"); err != nil {
		return nil, err
	}
	if b.initialGreenShare, err = cfg.Float("bri", "initial_green_share"); err != nil {
		return nil, err
	}
	if b.boostFactor, err = cfg.Float("bri", "innovation_boost_factor"); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BeltRoadSpillover) Initialize() error {
	b.greenShare = b.initialGreenShare
	logrus.Infof("%s: initial green share %.0f%%", b.Name(), b.greenShare*100)
	return nil
}

func (b *BeltRoadSpillover) Step(year int) error {
	// Green share drifts up 2% a year, capped at 90%.
	b.greenShare = math.Min(0.9, b.greenShare*1.02)

	greenInvestment := b.totalInvestmentBUSD * b.greenShare
	boost := 1 + greenInvestment*b.boostFactor

	b.Engine().State.Set(StateInnovationBoost, boost)

	b.Results().Append(sim.Row{
		"year":                  year,
		"green_investment_b_usd": greenInvestment,
		"green_share":           b.greenShare,
		"innovation_boost":      boost,
	})
	return nil
}

func (b *BeltRoadSpillover) Finalize() error {
	logrus.Infof("%s: final green share %.1f%%", b.Name(), b.greenShare*100)
	return nil
}
