package kong

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToJSON renders the configuration as indented JSON.
func (c *Configuration) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return append(data, '\n'), nil
}

// ToYAML renders the configuration as YAML.
func (c *Configuration) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return data, nil
}

// LoadJSON replaces the configuration with the given JSON document and
// repairs it.
func (c *Configuration) LoadJSON(data []byte) error {
	loaded := Configuration{}
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse JSON configuration: %w", err)
	}
	*c = loaded
	c.Validate()
	return nil
}

// LoadYAML replaces the configuration with the given YAML document and
// repairs it.
func (c *Configuration) LoadYAML(data []byte) error {
	loaded := Configuration{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	*c = loaded
	c.Validate()
	return nil
}

// Load reads a configuration from a .json, .yaml or .yml file, replacing
// the receiver, and runs Validate unconditionally. An unrecognized file
// extension is the one input error this model does not coerce.
func (c *Configuration) Load(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return c.LoadJSON(data)
	case ".yaml", ".yml":
		return c.LoadYAML(data)
	default:
		return fmt.Errorf("unsupported config file extension %q: config file must be JSON or YAML", filepath.Ext(path))
	}
}
