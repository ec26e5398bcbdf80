// Package mediator implements the Mediator: the interceptor that sits at
// every tool boundary, resolving keys into arguments on the way in and
// sanitizing raw values into keys on the way out.
package mediator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corvidlabs/dualmediator/internal/keyring"
	"github.com/corvidlabs/dualmediator/internal/policy"
	"github.com/corvidlabs/dualmediator/internal/protocol"
	"github.com/corvidlabs/dualmediator/internal/resolver"
	"github.com/corvidlabs/dualmediator/pkg/domain"
	mediatorerrors "github.com/corvidlabs/dualmediator/pkg/domain/errors"
	"github.com/corvidlabs/dualmediator/pkg/domain/graph"
	"github.com/corvidlabs/dualmediator/pkg/domain/state"
	"github.com/corvidlabs/dualmediator/pkg/ports"
	"github.com/corvidlabs/dualmediator/pkg/schema"
	"github.com/corvidlabs/dualmediator/pkg/utils/logging"
	"github.com/corvidlabs/dualmediator/pkg/utils/tracing"
)

// Mediator intercepts tool invocations for a single session: it owns the
// session's KeyRegistry, applies the PolicyGate before a tool runs,
// validates Q-LLM responses against their declared schema, and tracks the
// per-invocation state machine. A Mediator is not safe for concurrent use
// from multiple goroutines within the same session; the spec's scheduling
// model is single-threaded-cooperative per session.
type Mediator struct {
	sessionID   string
	registry    *keyring.Registry
	graph       *graph.Graph
	current     *stepper
	currentSpan *tracing.Span

	policyGate policy.Gate
	validator  *schema.Validator
	resolver   *resolver.Resolver

	events           ports.EventBus
	metrics          ports.MetricsCollector
	tracer           *tracing.Tracer
	logger           *logging.Logger
	transitionLogger state.TransitionLogger
}

// Option configures a Mediator at construction time.
type Option func(*Mediator)

// WithPolicy installs a PolicyGate. Without one, every tool call is allowed.
func WithPolicy(gate policy.Gate) Option {
	return func(m *Mediator) { m.policyGate = gate }
}

// WithSchemaValidator installs the SchemaValidator used for Q-LLM responses.
func WithSchemaValidator(v *schema.Validator) Option {
	return func(m *Mediator) { m.validator = v }
}

// WithEventBus installs an audit-event sink.
func WithEventBus(bus ports.EventBus) Option {
	return func(m *Mediator) { m.events = bus }
}

// WithMetrics installs a MetricsCollector.
func WithMetrics(collector ports.MetricsCollector) Option {
	return func(m *Mediator) { m.metrics = collector }
}

// WithTracer installs a Tracer.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(m *Mediator) { m.tracer = tracer }
}

// WithLogger installs a Logger. Without one, a default text logger is used.
func WithLogger(logger *logging.Logger) Option {
	return func(m *Mediator) { m.logger = logger }
}

// WithTransitionLogger installs the state.TransitionLogger used to record
// the per-invocation state machine's transitions. Without one, an
// InMemoryTransitionLogger is used.
func WithTransitionLogger(l state.TransitionLogger) Option {
	return func(m *Mediator) { m.transitionLogger = l }
}

// New constructs a Mediator for sessionID, owning a fresh KeyRegistry and
// validating its internal state machine once up front.
func New(sessionID string, opts ...Option) (*Mediator, error) {
	g, err := buildStateMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to build mediation state machine: %w", err)
	}

	registry := keyring.New()
	m := &Mediator{
		sessionID:        sessionID,
		registry:         registry,
		graph:            g,
		resolver:         resolver.New(registry),
		logger:           logging.NewDefaultLogger(),
		transitionLogger: state.NewInMemoryTransitionLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Registry returns the session's KeyRegistry.
func (m *Mediator) Registry() *keyring.Registry {
	return m.registry
}

// BeforeAgent is invoked once when a session begins. It exists for parity
// with the host framework's agent lifecycle hooks; this implementation has
// no per-session setup beyond what New already performs.
func (m *Mediator) BeforeAgent(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// BeforeTool resolves every key embedded in args in place and runs the
// PolicyGate against the resolved values. args is mutated; callers must not
// assume the map identity changes.
func (m *Mediator) BeforeTool(ctx context.Context, toolName string, args map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.current = newStepper(m.graph)
	m.current.advance(domain.InvocationResolving)

	if m.tracer != nil {
		span, _ := m.tracer.StartSpan(ctx, "mediate."+toolName)
		span.SetTag("tool_name", toolName)
		span.SetTag("session_id", m.sessionID)
		m.currentSpan = span
	}

	if err := resolveArgs(m.registry, toolName, args); err != nil {
		var malformed *mediatorerrors.MalformedRequestError
		if asMalformedRequest(err, &malformed) {
			m.logger.WithToolName(toolName).Warn("malformed qllm_remote request", "error", malformed.Error())
		}
	}

	m.current.advance(domain.InvocationPolicyCheck)

	if m.policyGate != nil {
		if err := m.policyGate.Check(toolName, args); err != nil {
			m.current.advance(domain.InvocationPolicyFail)
			m.publish(ctx, domain.EventPolicyDenied, toolName, map[string]interface{}{"reason": err.Error()})
			if m.metrics != nil {
				m.metrics.IncPolicyDenials(toolName, nil)
			}
			m.endSpan(err)
			m.current.advance(domain.InvocationIdle)
			m.logTransitions(ctx, toolName)
			return err
		}
	}

	m.current.advance(domain.InvocationExecuting)
	m.logTransitions(ctx, toolName)
	return nil
}

// AfterTool sanitizes result into the planner-visible representation,
// validating it first against the declared format when toolName is the
// Q-LLM tool. It returns the sanitized value, or a non-nil error when ctx is
// already done or on a schema violation.
func (m *Mediator) AfterTool(ctx context.Context, toolName string, args map[string]interface{}, result interface{}) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.current == nil {
		m.current = newStepper(m.graph)
		m.current.advance(domain.InvocationResolving)
		m.current.advance(domain.InvocationPolicyCheck)
		m.current.advance(domain.InvocationExecuting)
	}

	start := time.Now()
	defer func() {
		if m.metrics != nil {
			m.metrics.ObserveMediationDuration(toolName, time.Since(start), nil)
		}
	}()

	if toolName == protocol.QLLMToolName {
		m.current.advance(domain.InvocationValidating)
		if err := m.validateQLLMResponse(args, result); err != nil {
			m.current.advance(domain.InvocationSchemaFail)
			m.publish(ctx, domain.EventSchemaViolated, toolName, map[string]interface{}{"reason": err.Error()})
			if m.metrics != nil {
				m.metrics.IncSchemaViolations(nil)
			}
			m.endSpan(err)
			m.current.advance(domain.InvocationIdle)
			m.logTransitions(ctx, toolName)
			return nil, err
		}
	}

	m.current.advance(domain.InvocationStoring)
	sanitized := sanitizeResult(m.registry, toolName, result)
	m.current.advance(domain.InvocationIdle)
	m.logTransitions(ctx, toolName)

	m.publish(ctx, domain.EventToolMediated, toolName, nil)
	if m.metrics != nil {
		m.metrics.IncToolsMediated(toolName, nil)
		m.metrics.SetRegistrySize(m.sessionID, m.registry.Size())
	}
	m.endSpan(nil)

	return sanitized, nil
}

// endSpan closes the active span started by BeforeTool, if tracing is
// installed, recording err on it when non-nil.
func (m *Mediator) endSpan(err error) {
	if m.currentSpan == nil {
		return
	}
	if err != nil {
		m.currentSpan.SetError(err)
	}
	m.tracer.EndSpan(m.currentSpan)
	m.currentSpan = nil
}

// logTransitions forwards every state transition recorded since the last
// call to the installed TransitionLogger, stamping each with the session
// and tool it belongs to.
func (m *Mediator) logTransitions(ctx context.Context, toolName string) {
	if m.transitionLogger == nil || m.current == nil {
		return
	}
	for _, t := range m.current.drainTransitions() {
		t.SessionID = m.sessionID
		t.ToolName = toolName
		t.Timestamp = time.Now().Unix()
		_ = m.transitionLogger.LogTransition(ctx, t)
	}
}

// AfterAgent runs the FinalResolver over the planner's finished response,
// replacing any surviving key tokens with their resolved values.
func (m *Mediator) AfterAgent(ctx context.Context, finalText string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.resolver.Resolve(finalText), nil
}

// validateQLLMResponse validates result against the format map declared in
// the qllm_remote request's already-resolved args.
func (m *Mediator) validateQLLMResponse(args map[string]interface{}, result interface{}) error {
	if m.validator == nil {
		return nil
	}

	rawFormat, _ := args["format"].(map[string]interface{})
	format := make(schema.Format, len(rawFormat))
	for field, tag := range rawFormat {
		tagStr, ok := tag.(string)
		if !ok {
			return mediatorerrors.NewSchemaViolationError(field, "format tag must be a string")
		}
		format[field] = tagStr
	}
	if len(format) == 0 {
		return nil
	}

	data, err := marshalResult(result)
	if err != nil {
		return mediatorerrors.NewSchemaViolationError("", "response is not JSON-serializable")
	}

	if err := m.validator.Validate(format, data); err != nil {
		return mediatorerrors.NewSchemaViolationError("", err.Error())
	}
	return nil
}

// publish emits an audit event if an EventBus is installed, swallowing
// publish errors since audit logging must never block mediation.
func (m *Mediator) publish(ctx context.Context, eventType domain.EventType, toolName string, data map[string]interface{}) {
	if m.events == nil {
		return
	}
	evt := ports.Event{
		Type:      ports.EventType(eventType),
		Timestamp: time.Now(),
		SessionID: m.sessionID,
		ToolName:  toolName,
		Data:      data,
	}
	_ = m.events.Publish(ctx, string(eventType), evt)
}

// marshalResult encodes result as JSON for schema validation. A string
// result is assumed to already be a JSON document (the Q-LLM tool's raw
// response) and is used verbatim rather than re-encoded as a JSON string.
func marshalResult(result interface{}) ([]byte, error) {
	if s, ok := result.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(result)
}

func asMalformedRequest(err error, target **mediatorerrors.MalformedRequestError) bool {
	if e, ok := err.(*mediatorerrors.MalformedRequestError); ok {
		*target = e
		return true
	}
	return false
}
