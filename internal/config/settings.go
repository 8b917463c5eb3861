package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = ".orf.yaml"

//go:embed schema.json
var settingsSchema string

// Settings holds the values a config file may override.
type Settings struct {
	Mode  string        `yaml:"mode"`
	Range RangeSettings `yaml:"range"`
	Serve ServeSettings `yaml:"serve"`
}

// RangeSettings is the default section number range.
type RangeSettings struct {
	Lo int `yaml:"lo"`
	Hi int `yaml:"hi"`
}

// ServeSettings configures the HTTP API.
type ServeSettings struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Mode:  "numeric",
		Range: RangeSettings{Lo: 20, Hi: 31},
		Serve: ServeSettings{Addr: ":8080", MaxBodyBytes: 1 << 20},
	}
}

// LoadSettings reads a YAML config file, validates it against the embedded
// schema and merges it over the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	// #nosec G304 -- config path provided via command flag
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings validates and decodes YAML config content.
func ParseSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return settings, fmt.Errorf("invalid config yaml: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(settingsSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return settings, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return settings, errors.New("invalid config: " + strings.Join(msgs, "; "))
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("invalid config yaml: %w", err)
	}
	settings.Mode = strings.ToLower(strings.TrimSpace(settings.Mode))
	return settings, nil
}
