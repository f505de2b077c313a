// sim/config.go
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the nested scenario configuration consumed by components, keyed
// by domain area. It stays an untyped mapping so parameter paths can address
// any leaf; typed accessors cover the common leaf reads.
type Config map[string]any

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML into a Config.
func ParseConfig(data []byte) (Config, error) {
	// Decode into a plain map so nested mappings come out as map[string]any;
	// unmarshalling into the named Config type makes yaml.v3 reuse that type
	// for nested mappings, which the path helpers do not recognize.
	var cfg map[string]any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return Config(cfg), nil
}

// Value returns the raw value at the given path.
func (c Config) Value(path ...string) (any, error) {
	return GetPath(c, path)
}

// Float returns the numeric leaf at the given path, coercing YAML integers.
func (c Config) Float(path ...string) (float64, error) {
	v, err := GetPath(c, path)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, fmt.Errorf("config value %q is not numeric (got %T)", PathString(path), v)
	}
	return f, nil
}

// Int returns the integer leaf at the given path.
func (c Config) Int(path ...string) (int, error) {
	f, err := c.Float(path...)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Set assigns a value at the given path. Missing intermediates are errors.
func (c Config) Set(value any, path ...string) error {
	return SetPath(c, path, value)
}

// DeepCopy clones the configuration.
func (c Config) DeepCopy() Config {
	return Config(DeepCopy(c))
}
