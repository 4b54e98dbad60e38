package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/quasarlabs/toolgate/pkg/pricing"
)

// fileSchema validates catalog files before the typed construction path
// runs, so a malformed deployment fails with a schema pointer instead of a
// zero-value surprise.
const fileSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["capabilities"],
	"properties": {
		"capabilities": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "wire_path", "http_verb", "base_price_minor", "display_price_minor", "name"],
				"properties": {
					"id": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
					"wire_path": {"type": "string", "minLength": 1},
					"http_verb": {"type": "string", "enum": ["GET", "POST", "PUT", "DELETE"]},
					"base_price_minor": {"type": "integer", "minimum": 0},
					"display_price_minor": {"type": "integer", "minimum": 0},
					"name": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"aliases": {"type": "array", "items": {"type": "string"}},
					"group": {"type": "string"},
					"internal": {"type": "boolean"},
					"components": {"type": "array", "items": {"type": "string"}}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

var compiledFileSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	const url = "https://toolgate.schemas.local/catalog.schema.json"
	if err := c.AddResource(url, strings.NewReader(fileSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile(url)
}

type fileCapability struct {
	ID                string   `yaml:"id"`
	WirePath          string   `yaml:"wire_path"`
	HTTPVerb          string   `yaml:"http_verb"`
	BasePriceMinor    int64    `yaml:"base_price_minor"`
	DisplayPriceMinor int64    `yaml:"display_price_minor"`
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Aliases           []string `yaml:"aliases"`
	Group             string   `yaml:"group"`
	Internal          bool     `yaml:"internal"`
	Components        []string `yaml:"components"`
}

type catalogFile struct {
	Capabilities []fileCapability `yaml:"capabilities"`
}

// Load parses a YAML capability table, validates it against the embedded
// JSON Schema, and constructs a Registry through the same fail-fast path as
// the static table. Used for fixture registries and alternate deployments.
func Load(r io.Reader) (*Registry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read failed: %w", err)
	}

	// Schema validation works on JSON-shaped generic values; round-trip the
	// YAML document through encoding/json to normalize number types.
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: yaml parse failed: %w", err)
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("catalog: normalize failed: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(jsonBytes, &generic); err != nil {
		return nil, fmt.Errorf("catalog: normalize failed: %w", err)
	}
	if err := compiledFileSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("catalog: schema validation failed: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: yaml decode failed: %w", err)
	}

	table := make([]Capability, 0, len(file.Capabilities))
	for _, fc := range file.Capabilities {
		table = append(table, Capability{
			ID:           fc.ID,
			WirePath:     fc.WirePath,
			HTTPVerb:     fc.HTTPVerb,
			BasePrice:    pricing.USD(fc.BasePriceMinor),
			DisplayPrice: pricing.USD(fc.DisplayPriceMinor),
			Name:         fc.Name,
			Description:  fc.Description,
			Aliases:      fc.Aliases,
			Group:        fc.Group,
			Internal:     fc.Internal,
			Components:   fc.Components,
		})
	}
	return New(table)
}
