package preference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile is the YAML layout of a custom schema, a list keeps the field order explicit
type schemaFile struct {
	Fields []Field `yaml:"fields"`
}

// LoadSchema reads a schema from a YAML file
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from config
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	if len(sf.Fields) == 0 {
		return nil, fmt.Errorf("%w: schema file %s has no fields", ErrInvalidInput, path)
	}

	s, err := NewSchema(sf.Fields)
	if err != nil {
		return nil, fmt.Errorf("build schema from %s: %w", path, err)
	}
	return s, nil
}
