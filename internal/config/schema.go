package config

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

const (
	schemaID = "https://github.com/jmylchreest/bezel/bezel.schema.json"

	durationPattern     = `^([0-9]+|([0-9]*\.?[0-9]+(ns|us|µs|ms|s|m|h))+)$`
	durationDescription = `Duration such as "300ms", "0.9s" or integer milliseconds`
)

// Schema returns the JSON schema of the config file, keyed by TOML names.
func Schema() *jsonschema.Schema {
	// Every key is optional; missing ones take their defaults.
	r := &jsonschema.Reflector{
		FieldNameTag:               "toml",
		RequiredFromJSONSchemaTags: true,
		Mapper:                     durationSchema,
	}
	schema := r.Reflect(&Config{})
	// Field tags overwrite mapper descriptions, so durations are described
	// after reflection.
	describeDurations(schema)

	schema.ID = schemaID
	schema.Title = "Bezel Configuration"
	schema.Description = "Configuration schema for bezel and bezeld"
	return schema
}

func durationSchema(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeOf(Duration(0)) {
		return nil
	}
	return &jsonschema.Schema{
		Type:    "string",
		Pattern: durationPattern,
	}
}

func describeDurations(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	if s.Pattern == durationPattern && s.Description == "" {
		s.Description = durationDescription
	}
	for _, def := range s.Definitions {
		describeDurations(def)
	}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			describeDurations(pair.Value)
		}
	}
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
