// Package sim provides the discrete-time simulation engine and the Monte
// Carlo experiment layer of the DRAGONWIND platform.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - component.go: the Component contract (initialize / step / finalize /
//     results) every simulated unit implements
//   - engine.go: the ordered registry, the year-major step loop, and
//     sibling resolution
//   - montecarlo.go: the stochastic experiment runner layered on top
//
// # Architecture
//
// An Engine owns an ordered list of components and a shared state bus. Run
// initializes every component in registration order, steps all of them once
// per year (every component finishes year Y before any component begins
// year Y+1), then finalizes them. Components signal each other either
// through the bus (State) or by resolving a sibling reference during
// Initialize via Engine.Resolve — which makes registration order part of
// the dependency contract.
//
// MonteCarlo perturbs leaves of the nested scenario configuration
// (paths.go, distribution.go), runs a fresh engine per iteration from a
// deep-copied config, and aggregates final-year metrics into summary
// statistics and correlation-based sensitivity rankings (sensitivity.go).
//
// Domain components live in sub-packages; sim/energy holds the renewable
// energy transition models.
package sim
