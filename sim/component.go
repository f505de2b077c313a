// sim/component.go
package sim

// Component is the contract every simulated unit implements. Any type with
// these methods can be registered with an Engine; no base type is required,
// though BaseComponent covers the common fields.
//
// Lifecycle: SetEngine is called exactly once when the component is
// registered, Initialize exactly once per run, Step once per simulated year
// in registration order, Finalize exactly once after the last year. A
// component instance must not be registered with two different engines.
type Component interface {
	// Name identifies the component; sibling lookup matches on it.
	Name() string
	// SetEngine binds the owning engine. Called by Engine.AddComponent.
	SetEngine(*Engine)
	// Initialize prepares internal state before the first step. Components
	// that depend on siblings resolve them here; a missing dependency is
	// unrecoverable and must be returned as an error.
	Initialize() error
	// Step advances the component by one year. It may read and write the
	// engine's shared state and must be deterministic given its own state,
	// the shared state, and any injected randomness.
	Step(year int) error
	// Finalize performs end-of-run bookkeeping.
	Finalize() error
	// Results returns the accumulated result table. An empty frame is valid
	// and is skipped by downstream collectors.
	Results() *Frame
}

// BaseComponent carries the identity, engine back-reference, and result
// buffer shared by all components. Embed it and implement the lifecycle
// methods.
type BaseComponent struct {
	name    string
	engine  *Engine
	results *Frame
}

// NewBaseComponent creates the embeddable core with the component's name and
// result column schema.
func NewBaseComponent(name string, columns ...string) BaseComponent {
	return BaseComponent{name: name, results: NewFrame(columns...)}
}

func (b *BaseComponent) Name() string { return b.name }

func (b *BaseComponent) SetEngine(e *Engine) { b.engine = e }

// Engine returns the owning engine. Nil until the component is registered.
func (b *BaseComponent) Engine() *Engine { return b.engine }

func (b *BaseComponent) Results() *Frame { return b.results }
