// sim/state.go
package sim

// State is the engine-owned shared bus components use to signal each other
// within a run. Keys are plain strings, a write is visible to every read that
// happens later in execution order, and the last write before a read wins.
// Values persist across years until overwritten.
type State map[string]any

// Set publishes a value on the bus.
func (s State) Set(key string, value any) {
	s[key] = value
}

// Lookup returns the value for key and whether it was present, so a missing
// key is an explicit miss rather than a silent zero value.
func (s State) Lookup(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Float reads a numeric signal, returning def when the key is absent or the
// value is not numeric.
func (s State) Float(key string, def float64) float64 {
	if v, ok := s[key]; ok {
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	return def
}
