package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xeipuuv/gojsonschema"
	"go.yaml.in/yaml/v3"
)

// configSchema constrains the shape of a config document. Semantic rules live in Config.Validate.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "model_dir":            { "type": "string" },
    "model_filename":       { "type": "string" },
    "param_filename":       { "type": "string" },
    "optimized_model_path": { "type": "string" },
    "input_shape":          { "type": "string", "pattern": "^[0-9 ,:]+$" },
    "input_path":           { "type": "string" },
    "input_file":           { "type": "string" },
    "warmup":               { "type": "integer", "minimum": 0 },
    "repeats":              { "type": "integer", "minimum": 0 },
    "power_mode":           { "type": "integer", "minimum": 0, "maximum": 3 },
    "threads":              { "type": "integer", "minimum": 1 },
    "is_quantized_model":   { "type": "boolean" },
    "run_model_optimize":   { "type": "boolean" },
    "legacy_minmax_labels": { "type": "boolean" },
    "debug":                { "type": "boolean" },
    "logFile":              { "type": "string" },
    "resultsDir":           { "type": "string" },
    "historyDB":            { "type": "string" }
  }
}`

// readDocument decodes a config file into a generic map according to its extension.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
	case ".json", "":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return doc, nil
}

// ValidateDocument checks a decoded config document against the config schema.
func ValidateDocument(doc map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return errors.New(strings.Join(problems, "; "))
}
