// Package calldoc reads call documents: YAML or JSON files naming one
// catalog action and the values to assign to its fields.
//
//	group: inbound
//	action: CreateInboundShipment
//	fields:
//	  ShipmentId: FBA123
//	  InboundShipmentItems:
//	    - {SellerSKU: SKU-1, QuantityShipped: 10}
//
// Documents are checked against an embedded JSON Schema before any field
// reaches the engine, so shape errors report the offending location.
package calldoc

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/solatis/mwsfba/internal/fba"
	"github.com/solatis/mwsfba/internal/params"
)

//go:embed calldoc.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("calldoc.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Document is one call: the action to build and its field values.
type Document struct {
	Group  string         `json:"group" yaml:"group"`
	Action string         `json:"action" yaml:"action"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read call document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes YAML or JSON (JSON is valid YAML) and validates it.
// Numbers are kept as json.Number so integers never pass through float64.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse call document: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("call document is empty")
	}

	// Round-trip through JSON so the validator and the decoder both see
	// plain JSON values.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert call document: %w", err)
	}
	return ParseJSON(jsonData)
}

// ParseJSON validates and decodes a JSON call document.
func ParseJSON(data []byte) (*Document, error) {
	var value any
	if err := decodeJSON(data, &value); err != nil {
		return nil, fmt.Errorf("failed to parse call document: %w", err)
	}
	if err := Validate(value); err != nil {
		return nil, err
	}

	var doc Document
	if err := decodeJSON(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode call document: %w", err)
	}
	return &doc, nil
}

// Validate checks a decoded JSON value against the call document schema.
func Validate(value any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile call document schema: %w", err)
	}
	if err := s.Validate(value); err != nil {
		return fmt.Errorf("invalid call document: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Build creates a request for doc's action and assigns every field.
// A complex field takes a list of objects; each object becomes one member
// of the field's list. Fields are assigned in sorted order so the first
// error reported is stable.
func Build(catalog *fba.Catalog, doc *Document) (*params.Request, error) {
	req, err := catalog.New(doc.Group, doc.Action)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.Fields))
	for name := range doc.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := doc.Fields[name]
		def, ok := req.Schema().Definition(name)
		if ok && def.Kind == params.KindComplex && value != nil {
			if err := assignComplex(req, name, value); err != nil {
				return nil, err
			}
			continue
		}
		if err := req.Assign(name, value); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func assignComplex(req *params.Request, field string, value any) error {
	items, ok := value.([]any)
	if !ok {
		return &params.InvalidComplexValueError{Field: field, Value: value}
	}
	list, err := req.Complex(field)
	if err != nil {
		return err
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return &params.InvalidComplexValueError{Field: field, Value: item}
		}
		list.Add(params.Member(m))
	}
	return nil
}
