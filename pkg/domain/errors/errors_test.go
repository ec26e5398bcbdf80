package errors

import (
	"errors"
	"testing"
)

func TestUnknownKeyError(t *testing.T) {
	err := NewUnknownKeyError("abc-123")
	expected := "unknown key: abc-123"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestPolicyViolationError(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
		reason   string
		expected string
	}{
		{
			name:     "untrusted recipient",
			toolName: "send_money",
			reason:   "recipient not in allowlist",
			expected: `policy violation on tool "send_money": recipient not in allowlist`,
		},
		{
			name:     "amount over threshold",
			toolName: "send_money",
			reason:   "amount exceeds limit",
			expected: `policy violation on tool "send_money": amount exceeds limit`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPolicyViolationError(tt.toolName, tt.reason)
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
		})
	}
}

func TestSchemaViolationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "temperature",
			message:  "expected number, got string",
			expected: `schema violation on field "temperature": expected number, got string`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "response is not an object",
			expected: "schema violation: response is not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSchemaViolationError(tt.field, tt.message)
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
		})
	}
}

func TestMalformedRequestError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewMalformedRequestError("qllm_remote", cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("expected unwrapped error %v, got %v", cause, unwrapped)
	}
	expected := `malformed request for tool "qllm_remote": unexpected end of JSON input`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestRegistryFaultError(t *testing.T) {
	cause := errors.New("duplicate key id")
	err := NewRegistryFaultError("collision detected", cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("expected unwrapped error %v, got %v", cause, unwrapped)
	}
	expected := "registry fault: collision detected (caused by: duplicate key id)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	noCause := NewRegistryFaultError("store is nil", nil)
	expectedNoCause := "registry fault: store is nil"
	if noCause.Error() != expectedNoCause {
		t.Errorf("expected %q, got %q", expectedNoCause, noCause.Error())
	}
}
