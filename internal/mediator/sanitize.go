package mediator

import (
	"encoding/json"
	"fmt"

	"github.com/corvidlabs/dualmediator/internal/keyring"
)

// sanitizeResult converts a raw tool result into the planner-visible
// representation: every leaf that could carry untrusted data is replaced
// by a key token bound to the corresponding raw value in registry.
//
// Sanitization is intentionally shallow: one level of field-by-field keying
// for objects, a single key for anything else. A planner that needs
// per-element access to a list must route it through the Q-LLM tool and
// declare per-element fields in its format, rather than relying on the
// Mediator to key deeper structures individually. This keeps the planner
// able to address top-level fields by name while never exposing their
// contents, without tying sanitize's shape to the tool's output schema.
func sanitizeResult(registry *keyring.Registry, toolName string, result interface{}) interface{} {
	if result == nil {
		return nil
	}
	if s, ok := result.(string); ok && s == "" {
		return result
	}

	if s, ok := result.(string); ok {
		if parsed, ok := tryParseJSON(s); ok {
			result = parsed
		}
	}

	switch v := result.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			return v
		}
		out := make(map[string]interface{}, len(v))
		for field, value := range v {
			typeHint := fmt.Sprintf("tool:%s:%s", toolName, field)
			out[field] = registry.Create(value, typeHint)
		}
		return out
	default:
		typeHint := fmt.Sprintf("tool:%s", toolName)
		return map[string]interface{}{"output": registry.Create(v, typeHint)}
	}
}

// tryParseJSON attempts to parse s as JSON, stripping one enclosing
// Markdown code fence first if present. It reports whether parsing
// succeeded.
func tryParseJSON(s string) (interface{}, bool) {
	candidate := stripCodeFence(s)
	var parsed interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}
