package domain

import (
	"time"

	"github.com/corvidlabs/dualmediator/pkg/domain/graph"
	"github.com/corvidlabs/dualmediator/pkg/domain/state"
)

// Re-export types from sub-packages so callers outside this module can
// depend on a single domain package for the core vocabulary.
type (
	Graph    = graph.Graph
	Node     = graph.Node
	NodeType = graph.NodeType
	State    = state.State
)

// InvocationState names a stage in the per-tool-call mediation state
// machine. The legal transitions between these states are encoded as a
// graph.Graph by internal/mediator/statemachine.go.
type InvocationState string

const (
	InvocationIdle        InvocationState = "idle"
	InvocationResolving   InvocationState = "resolving"
	InvocationPolicyCheck InvocationState = "policy_check"
	InvocationExecuting   InvocationState = "executing"
	InvocationValidating  InvocationState = "validating"
	InvocationStoring     InvocationState = "storing"
	InvocationPolicyFail  InvocationState = "policy_fail"
	InvocationSchemaFail  InvocationState = "schema_fail"
)

// EventType identifies a mediator lifecycle event, emitted on the
// ports.EventBus for audit logging.
type EventType string

const (
	EventKeyCreated     EventType = "key.created"
	EventPolicyDenied   EventType = "policy.denied"
	EventSchemaViolated EventType = "schema.violated"
	EventToolMediated   EventType = "tool.mediated"
	EventSessionClosed  EventType = "session.closed"
)

// Event is a single audit-log entry describing something the mediator did.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	ToolName  string                 `json:"tool_name,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}
