package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	if err := checkRequired(schema, defs, configMap, ""); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkRequired walks the schema and reports required properties with empty values
func checkRequired(node, defs, value map[string]any, path string) error {
	if ref, ok := node["$ref"].(string); ok {
		def, ok := defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any)
		if !ok {
			return fmt.Errorf("unresolved schema reference %s", ref)
		}
		node = def
	}

	if required, ok := node["required"].([]any); ok {
		for _, r := range required {
			name, _ := r.(string)
			if isEmptyValue(value[name]) {
				return fmt.Errorf("%s%s is required", path, name)
			}
		}
	}

	props, _ := node["properties"].(map[string]any)
	for name, p := range props {
		prop, ok := p.(map[string]any)
		if !ok {
			continue
		}
		child, ok := value[name].(map[string]any)
		if !ok {
			continue
		}
		if err := checkRequired(prop, defs, child, path+name+"."); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	r := jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{}), nil
}
