package mediator

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/corvidlabs/dualmediator/internal/keyring"
	"github.com/corvidlabs/dualmediator/internal/protocol"
	mediatorerrors "github.com/corvidlabs/dualmediator/pkg/domain/errors"
)

// fullKeyToken matches a string that, in its entirety, is a "key:<id>"
// token. Detection here is whole-string equality to this shape, not a
// substring search: a value like "see key:1234 for details" is left
// untouched because it is not itself a key, only text that mentions one.
var fullKeyToken = regexp.MustCompile(`^key:[0-9a-fA-F-]+$`)

// resolveValue recursively walks v, replacing any string that matches the
// key:<id> shape with its resolved value from registry. Maps and slices are
// walked in place; all other scalars pass through untouched. Unknown keys
// are left as literal strings since tools may legitimately carry user text
// that happens to resemble a key.
func resolveValue(registry *keyring.Registry, v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, elem := range val {
			val[k] = resolveValue(registry, elem)
		}
		return val
	case []interface{}:
		for i, elem := range val {
			val[i] = resolveValue(registry, elem)
		}
		return val
	case string:
		if !fullKeyToken.MatchString(val) {
			return val
		}
		resolved, err := registry.Resolve(val)
		if err != nil {
			return val
		}
		return resolved
	default:
		return val
	}
}

// resolveArgs resolves every key embedded in args in place, applying the
// qllm_remote nested-JSON special case when toolName matches.
func resolveArgs(registry *keyring.Registry, toolName string, args map[string]interface{}) error {
	for k, v := range args {
		args[k] = resolveValue(registry, v)
	}

	if toolName != protocol.QLLMToolName {
		return nil
	}
	return resolveQLLMRequest(registry, args)
}

// resolveQLLMRequest performs the second-pass resolution the qllm_remote
// tool needs: its "request" argument is a JSON document serialized as a
// string, and keys embedded inside that payload must also be resolved
// before the request is dispatched to the quarantined model. Parse
// failures are non-fatal: the first-pass-resolved string is forwarded
// unchanged and a *errors.MalformedRequestError is returned for the caller
// to log.
func resolveQLLMRequest(registry *keyring.Registry, args map[string]interface{}) error {
	raw, ok := args["request"]
	if !ok {
		return nil
	}
	text, ok := raw.(string)
	if !ok {
		return nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return mediatorerrors.NewMalformedRequestError(protocol.QLLMToolName, err)
	}

	resolved := resolveValue(registry, parsed)
	out, err := json.Marshal(resolved)
	if err != nil {
		return mediatorerrors.NewMalformedRequestError(protocol.QLLMToolName, err)
	}

	args["request"] = string(out)
	return nil
}

// stripCodeFence removes a single enclosing Markdown code fence (``` or
// ```json ... ```) from s, if present, returning the inner content.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(trimmed[:nl])
		if firstLine == "" || isLanguageTag(firstLine) {
			trimmed = trimmed[nl+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// isLanguageTag reports whether s looks like a code-fence language tag
// (e.g. "json") rather than content.
func isLanguageTag(s string) bool {
	if s == "" || len(s) > 16 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
