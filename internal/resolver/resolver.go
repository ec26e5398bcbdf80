// Package resolver implements the FinalResolver: the pass that replaces
// surviving key tokens in the planner's final text with their resolved
// values before the response reaches the user.
package resolver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/corvidlabs/dualmediator/internal/keyring"
)

// keyPattern matches a "key:<id>" token where <id> is the canonical
// 36-character UUIDv4 hex-group form this implementation's keyring
// exclusively produces. Anchoring to the fixed shape (rather than a looser
// class of id characters) eliminates the greedy-match ambiguity a looser
// pattern would have over adjacent text.
var keyPattern = regexp.MustCompile(
	`key:([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`,
)

// Resolver rewrites key tokens found in planner output back into their
// underlying values, using a keyring.Registry as the source of truth.
type Resolver struct {
	registry *keyring.Registry
}

// New returns a Resolver backed by registry.
func New(registry *keyring.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve scans text for key tokens and replaces each with its resolved
// value's textual form. Unknown keys are left as-is. Objects and arrays
// render as compact JSON; scalars render as their plain textual form.
// Running Resolve on text with no key tokens is the identity.
func (r *Resolver) Resolve(text string) string {
	return keyPattern.ReplaceAllStringFunc(text, func(match string) string {
		value, err := r.registry.Resolve(match)
		if err != nil {
			return match
		}
		return render(value)
	})
}

// render formats a resolved value for inline display in natural-language
// text: scalars as their plain form, objects/arrays as compact JSON.
func render(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		// Matches Python's str() on a float: a whole number still shows
		// its trailing ".0" rather than rendering as an integer.
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case map[string]interface{}, []interface{}:
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(out)
	default:
		return fmt.Sprintf("%v", v)
	}
}
