package sources

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/game-catalog-server/internal/config"
)

const catalogSchemaURL = "https://stacklok.dev/schemas/game-catalog.schema.json"

//go:embed schema/catalog.schema.json
var catalogSchemaJSON []byte

var compileCatalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add catalog schema: %w", err)
	}

	return c.Compile(catalogSchemaURL)
})

// CatalogDataValidator validates raw catalog documents
type CatalogDataValidator interface {
	// ValidateData validates raw data in the given format and returns the parsed Document
	ValidateData(data []byte, format string) (*Document, error)
}

// schemaValidator validates documents against the embedded catalog JSON schema
type schemaValidator struct{}

var _ CatalogDataValidator = (*schemaValidator)(nil)

// NewCatalogDataValidator creates a new schema based validator
func NewCatalogDataValidator() CatalogDataValidator {
	return &schemaValidator{}
}

// ValidateData validates raw data and returns a parsed Document
func (*schemaValidator) ValidateData(data []byte, format string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("data cannot be empty")
	}

	var jsonData []byte
	switch format {
	case "", config.SourceFormatJSON:
		jsonData = data
	case config.SourceFormatYAML:
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		jsonData = converted
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	schema, err := compileCatalogSchema()
	if err != nil {
		return nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("catalog does not match schema: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return &doc, nil
}

// yamlToJSON re-encodes a YAML document as JSON so that both formats share one schema
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return out, nil
}
