// sim/errors.go
package sim

import "errors"

var (
	// ErrDependencyNotFound is returned by Engine.Resolve when no registered
	// component matches the requested name.
	ErrDependencyNotFound = errors.New("dependency not found")

	// ErrAmbiguousDependency is returned by Engine.Resolve when a prefix
	// matches more than one registered component.
	ErrAmbiguousDependency = errors.New("ambiguous dependency")

	// ErrMissingKey is returned by GetPath/SetPath when a path segment is
	// absent from the nested configuration.
	ErrMissingKey = errors.New("missing key")

	// ErrBadDistribution is returned by ParameterDistribution.Sample for an
	// unknown kind or a malformed parameter set.
	ErrBadDistribution = errors.New("bad distribution")

	// ErrEngineReused is returned by Engine.Run on a second call; engines
	// are single-use.
	ErrEngineReused = errors.New("engine already ran")
)
