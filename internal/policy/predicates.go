package policy

import (
	"fmt"
	"strings"

	mediatorerrors "github.com/corvidlabs/dualmediator/pkg/domain/errors"
)

// Allowlist denies any call to ToolName whose Field does not hold one of
// the Values, exact match (after trimming whitespace), case-sensitive.
// Grounded on the banking and slack benchmarks' "recipient"/"channel"
// allowlist checks, which compare IBANs and channel URLs case-sensitively.
type Allowlist struct {
	ToolName string
	Field    string
	Values   map[string]bool
}

// NewAllowlist builds an Allowlist from a plain slice of allowed values.
func NewAllowlist(toolName, field string, values []string) *Allowlist {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return &Allowlist{ToolName: toolName, Field: field, Values: set}
}

// Check implements Gate.
func (a *Allowlist) Check(toolName string, resolvedArgs map[string]interface{}) error {
	if toolName != a.ToolName {
		return nil
	}

	raw, ok := resolvedArgs[a.Field]
	if !ok {
		return nil
	}

	value, ok := raw.(string)
	if !ok {
		return mediatorerrors.NewPolicyViolationError(toolName,
			fmt.Sprintf("field %q must be a string, got %T", a.Field, raw))
	}
	value = strings.TrimSpace(value)

	if !a.Values[value] {
		return mediatorerrors.NewPolicyViolationError(toolName,
			fmt.Sprintf("%q is not in the trusted allowlist for field %q", value, a.Field))
	}
	return nil
}

// Threshold denies any call to ToolName whose Field holds a numeric value
// greater than Max. Grounded on the banking benchmark's "$2000 transfer
// limit" check.
type Threshold struct {
	ToolName string
	Field    string
	Max      float64
}

// NewThreshold builds a Threshold gate.
func NewThreshold(toolName, field string, max float64) *Threshold {
	return &Threshold{ToolName: toolName, Field: field, Max: max}
}

// Check implements Gate.
func (th *Threshold) Check(toolName string, resolvedArgs map[string]interface{}) error {
	if toolName != th.ToolName {
		return nil
	}

	raw, ok := resolvedArgs[th.Field]
	if !ok {
		return nil
	}

	value, ok := numericValue(raw)
	if !ok {
		return mediatorerrors.NewPolicyViolationError(toolName,
			fmt.Sprintf("field %q must be numeric, got %T", th.Field, raw))
	}

	if value > th.Max {
		return mediatorerrors.NewPolicyViolationError(toolName,
			fmt.Sprintf("%v exceeds the limit of %v for field %q", value, th.Max, th.Field))
	}
	return nil
}

// numericValue extracts a float64 from any of the numeric types the JSON
// decoder or a Go caller might plausibly hand the gate.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
