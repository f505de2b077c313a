// Package energy holds the renewable energy transition components stepped
// by the simulation engine: capacity growth, grid curtailment, green
// finance, provincial spread, carbon accounting, belt-and-road spillover,
// and the manufacturing / installation / storage / EV supply-side models.
//
// Every component reads its parameters from leaves of the scenario
// configuration, so the Monte Carlo layer can perturb any of them by path.
// Components that depend on a sibling resolve it during Initialize, which
// means they must be registered after that sibling; the CLI factory in
// cmd/root.go registers CapacityExpansion first for this reason.
package energy

// Registered component names, used for sibling resolution.
const (
	CapacityName      = "Renewable Capacity Expansion"
	GridName          = "Grid Integration"
	FinanceName       = "Financial Modeling"
	ProvincialName    = "Provincial Analysis"
	CarbonName        = "Carbon Pathways"
	BeltRoadName      = "BRI Analysis"
	ManufacturingName = "Manufacturing Capacity"
	InstallationName  = "Installation Capacity"
	StorageName       = "BESS Deployment"
	EVName            = "EV Adoption"
)

// StateInnovationBoost is the shared-state key BeltRoadSpillover publishes
// and CapacityExpansion reads. The boost multiplies annual capacity growth;
// 1.0 means no effect.
const StateInnovationBoost = "bri_innovation_boost"
