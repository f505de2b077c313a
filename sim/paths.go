// sim/paths.go
package sim

import (
	"fmt"
	"strings"
)

// GetPath walks a nested string-keyed mapping key by key and returns the
// value at the leaf. Any absent segment fails with ErrMissingKey; an
// intermediate that is not a mapping is also an error.
func GetPath(cfg map[string]any, path []string) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrMissingKey)
	}
	var cur any = cfg
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("path %q: segment %q is not a mapping", PathString(path), path[i-1])
		}
		cur, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q (segment %q)", ErrMissingKey, PathString(path), key)
		}
	}
	return cur, nil
}

// SetPath walks all but the last key and assigns the final one. Missing
// intermediates are errors, never auto-created.
func SetPath(cfg map[string]any, path []string, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrMissingKey)
	}
	target := cfg
	for i, key := range path[:len(path)-1] {
		next, ok := target[key]
		if !ok {
			return fmt.Errorf("%w: %q (segment %q)", ErrMissingKey, PathString(path), key)
		}
		m, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("path %q: segment %q is not a mapping", PathString(path), path[i])
		}
		target = m
	}
	target[path[len(path)-1]] = value
	return nil
}

// PathString joins a parameter path with dots, the form used to key sampled
// parameter sets and persisted artifacts.
func PathString(path []string) string {
	return strings.Join(path, ".")
}

// SplitPath is the inverse of PathString.
func SplitPath(s string) []string {
	return strings.Split(s, ".")
}

// DeepCopy clones a nested configuration so mutations of the copy never
// reach the original. Nested maps and slices are copied recursively;
// scalars are shared.
func DeepCopy(cfg map[string]any) map[string]any {
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return DeepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
