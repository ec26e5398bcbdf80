// Package schema compiles JSON Schema documents for Q-LLM structured
// responses on demand.
//
// A Q-LLM request declares a Format: a map of field name to type tag drawn
// from a closed vocabulary (int, integer, float, number, string, str, bool,
// boolean, object, array, list). Validator.BuildSchema renders that map into
// a JSON Schema document requiring an object with every declared field
// (each may also be null; extra fields are permitted), compiles it with santhosh-tekuri/jsonschema, and caches the result
// so repeat requests with an equivalent shape reuse the compiled schema.
//
// There are no schema documents on disk or embedded in the binary: every
// schema this package produces is derived entirely from a caller-supplied
// Format at request time.
package schema
