// sim/engine.go
package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Engine drives a fixed set of components in lockstep over a range of yearly
// ticks. Registration order is authoritative: initialize, step, and finalize
// all iterate in the order AddComponent was called, and the step loop is
// year-major (every component finishes year Y before any component begins
// year Y+1).
//
// Registration order is also a correctness invariant for data flow: a
// component that reads a sibling's current-year output must be registered
// after that sibling, or it will observe the previous year's values.
//
// Engines are single-use; Run returns ErrEngineReused on a second call.
type Engine struct {
	StartYear int
	EndYear   int
	// State is the shared bus. Writable by any component during its step;
	// read-only once Run returns.
	State State

	components []Component
	ran        bool
}

// NewEngine creates an engine for the inclusive year range [startYear,
// endYear]. endYear must not precede startYear.
func NewEngine(startYear, endYear int) (*Engine, error) {
	if endYear < startYear {
		return nil, fmt.Errorf("end year %d precedes start year %d", endYear, startYear)
	}
	return &Engine{
		StartYear: startYear,
		EndYear:   endYear,
		State:     make(State),
	}, nil
}

// AddComponent appends to the ordered registry and binds the component's
// engine back-reference. Must be called before Run.
func (e *Engine) AddComponent(c Component) {
	c.SetEngine(e)
	e.components = append(e.components, c)
}

// Components returns the registry in registration order.
func (e *Engine) Components() []Component {
	return e.components
}

// Years returns the number of simulated years.
func (e *Engine) Years() int {
	return e.EndYear - e.StartYear + 1
}

// Resolve locates a registered component by name. An exact match wins; a
// name prefix is accepted when it matches exactly one component. Zero
// matches return ErrDependencyNotFound, multiple prefix matches
// ErrAmbiguousDependency.
func (e *Engine) Resolve(name string) (Component, error) {
	var matches []Component
	for _, c := range e.components {
		if c.Name() == name {
			return c, nil
		}
		if strings.HasPrefix(c.Name(), name) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no component named %q is registered", ErrDependencyNotFound, name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name()
		}
		return nil, fmt.Errorf("%w: prefix %q matches %s", ErrAmbiguousDependency, name, strings.Join(names, ", "))
	}
}

// Run executes the three-phase lifecycle: initialize every component in
// registration order, step every component once per year (year-major), then
// finalize every component. Initialize and step errors abort immediately.
// Finalize errors are fatal too, but every component gets its finalize
// attempt first. progress may be nil.
func (e *Engine) Run(progress ProgressFunc) error {
	if e.ran {
		return ErrEngineReused
	}
	e.ran = true

	logrus.Infof("starting simulation %d-%d with %d components", e.StartYear, e.EndYear, len(e.components))

	for _, c := range e.components {
		if err := c.Initialize(); err != nil {
			return fmt.Errorf("initialize %s: %w", c.Name(), err)
		}
	}

	total := e.Years()
	for year := e.StartYear; year <= e.EndYear; year++ {
		logrus.Infof("[year %d] stepping components", year)
		for _, c := range e.components {
			if err := c.Step(year); err != nil {
				return fmt.Errorf("step %s for year %d: %w", c.Name(), year, err)
			}
		}
		notifyProgress(progress, year, year-e.StartYear+1, total)
	}

	var finalizeErrs []error
	for _, c := range e.components {
		if err := c.Finalize(); err != nil {
			finalizeErrs = append(finalizeErrs, fmt.Errorf("finalize %s: %w", c.Name(), err))
		}
	}
	if err := errors.Join(finalizeErrs...); err != nil {
		return err
	}

	logrus.Info("simulation finished")
	return nil
}

// Results maps each component name to its accumulated result frame.
func (e *Engine) Results() map[string]*Frame {
	out := make(map[string]*Frame, len(e.components))
	for _, c := range e.components {
		out[c.Name()] = c.Results()
	}
	return out
}
