package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var schema = jsonschema.MustCompileString("sprog.schema.json", schemaJSON)

// Load loads the sprog configuration.
// Search order: customPath -> ~/.sprog/config.yaml -> ./configs/sprog.yaml -> embedded default.
// Files are overlaid on the embedded default, so a file only needs the keys
// it changes. A file that exists but does not validate is an error.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return loadFile(customPath, data)
	}

	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "sprog.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return loadFile(path, data)
	}

	return Default(), nil
}

func loadFile(path string, data []byte) (Config, error) {
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse validates data and overlays it on the embedded default.
func Parse(data []byte) (Config, error) {
	return parse(data, Default())
}

func parse(data []byte, base Config) (Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := validateSchema(raw); err != nil {
		return Config{}, err
	}

	// Bindings are tied to the layout they were written for, and maps merge
	// key by key when decoded. Start them empty when the file supplies its
	// own layout or bindings.
	top, _ := raw.(map[string]any)
	if has(top, "input", "clusters") || has(top, "input", "buttons") {
		base.Terminal.Keys = nil
		base.Fbdev.Codes = nil
	}
	if has(top, "terminal", "keys") {
		base.Terminal.Keys = nil
	}
	if has(top, "fbdev", "codes") {
		base.Fbdev.Codes = nil
	}

	cfg := base
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func has(top map[string]any, section, key string) bool {
	m, ok := top[section].(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// validateSchema checks the decoded YAML document against the embedded
// JSON schema. The document goes through encoding/json first so that the
// validator sees the same types it would for a JSON file.
func validateSchema(doc any) error {
	b, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// jsonCompatible converts YAML mappings with non-string keys so that
// encoding/json can marshal them.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = jsonCompatible(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = jsonCompatible(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonCompatible(e)
		}
		return out
	default:
		return v
	}
}

// userConfigPath returns the path to a file in the user's sprog directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sprog", filename)
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
