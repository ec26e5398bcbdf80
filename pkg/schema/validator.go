// Package schema compiles and runs JSON Schema validation for Q-LLM
// structured responses.
//
// Q-LLM requests declare a "format" map of field name to type tag drawn from
// a closed vocabulary (see typeTag). Unlike a conventional validator backed
// by a fixed set of schema documents on disk, this package has no schemas to
// embed: every schema is compiled on demand from the caller's format map, so
// a Validator can be constructed once and reused across arbitrarily many
// distinct response shapes.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// typeTag maps the closed vocabulary of format-map type tags to the JSON
// Schema "type" keyword value(s) they compile to.
var typeTag = map[string]interface{}{
	"int":     "integer",
	"integer": "integer",
	"float":   "number",
	"number":  "number",
	"string":  "string",
	"str":     "string",
	"bool":    "boolean",
	"boolean": "boolean",
	"object":  "object",
	"array":   "array",
	"list":    "array",
}

// Format is a field name to type tag map describing the shape a Q-LLM
// response must conform to. Keys are response field names; values must be
// one of the tags recognized by typeTag.
type Format map[string]string

// Validator compiles and caches JSON schemas built from Format maps and
// validates decoded response data against them.
type Validator struct {
	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

// NewValidator returns a ready-to-use Validator with an empty schema cache.
func NewValidator() (*Validator, error) {
	return &Validator{
		schemas: make(map[string]*jsonschema.Schema),
	}, nil
}

// BuildSchema compiles format into a JSON Schema document requiring an
// object with every declared field, each constrained to its tagged type or
// null; fields beyond those declared are permitted. It returns the compiled schema. Compiled schemas are cached by the
// canonical form of format, so repeated calls with an equivalent map reuse
// the same *jsonschema.Schema.
func (v *Validator) BuildSchema(format Format) (*jsonschema.Schema, error) {
	key, err := cacheKey(format)
	if err != nil {
		return nil, fmt.Errorf("invalid format map: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[key]; ok {
		return s, nil
	}

	doc, err := documentFor(format)
	if err != nil {
		return nil, err
	}

	resourceName := "format-" + key + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(resourceName, strings.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[key] = schema
	return schema, nil
}

// Validate decodes data as JSON and checks it against the schema compiled
// from format, building and caching that schema on first use.
func (v *Validator) Validate(format Format, data []byte) error {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return &ValidationError{Message: "invalid JSON", Cause: err}
	}

	schema, err := v.BuildSchema(format)
	if err != nil {
		return &ValidationError{Message: "schema compilation failed", Cause: err}
	}

	if err := schema.Validate(decoded); err != nil {
		return &ValidationError{Message: "response does not match declared format", Cause: err}
	}

	return nil
}

// documentFor renders format as a JSON Schema document string.
func documentFor(format Format) (string, error) {
	properties := make(map[string]interface{}, len(format))
	required := make([]string, 0, len(format))

	for field, tag := range format {
		jsonType, ok := typeTag[strings.ToLower(tag)]
		if !ok {
			return "", fmt.Errorf("unrecognized format type tag %q for field %q", tag, field)
		}
		// null is always accepted alongside the declared type: it stands
		// for data the Q-LLM could not extract from the source text.
		properties[field] = map[string]interface{}{"type": []interface{}{jsonType, "null"}}
		required = append(required, field)
	}

	doc := map[string]interface{}{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": properties,
		"required":   required,
		// Extra fields beyond those declared are permitted: a Q-LLM
		// response is still valid if it returns more than the planner
		// asked for, so long as every declared field is present and
		// correctly typed.
		"additionalProperties": true,
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generated schema: %w", err)
	}
	return string(out), nil
}

// cacheKey returns a stable identifier for format, independent of map
// iteration order, suitable for use as both a cache key and a compiler
// resource name.
func cacheKey(format Format) (string, error) {
	if len(format) == 0 {
		return "", fmt.Errorf("format map must have at least one field")
	}

	fields := make([]string, 0, len(format))
	for field := range format {
		fields = append(fields, field)
	}
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1] > fields[j]; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}

	var b strings.Builder
	for _, field := range fields {
		b.WriteString(field)
		b.WriteByte('=')
		b.WriteString(strings.ToLower(format[field]))
		b.WriteByte(';')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16], nil
}

// ValidationError wraps schema validation failures with additional context.
type ValidationError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema validation failed: %s (caused by: %v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema validation failed: %s", e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}
