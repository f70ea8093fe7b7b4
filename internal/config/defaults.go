package config

import (
	_ "embed"
	"fmt"
)

//go:embed defaults/sprog.yaml
var defaultYAML []byte

//go:embed defaults/sprog.schema.json
var schemaJSON string

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Default returns the embedded default configuration.
// It panics if the embedded file is broken, which tests guard against.
func Default() Config {
	cfg, err := parse(defaultYAML, Config{})
	if err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	cfg.Source = "embedded"
	return cfg
}
