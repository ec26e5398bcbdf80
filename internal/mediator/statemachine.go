package mediator

import (
	"context"
	"fmt"

	"github.com/corvidlabs/dualmediator/pkg/domain"
	"github.com/corvidlabs/dualmediator/pkg/domain/graph"
	"github.com/corvidlabs/dualmediator/pkg/domain/state"
)

// buildStateMachine constructs the fixed per-invocation mediation graph:
//
//	idle -> resolving -> policy_check -> executing -> validating -> storing -> idle
//	                  \-> policy_fail            \-> schema_fail
//
// validating is only entered for Q-LLM calls; ordinary tool calls skip it
// and transition straight from executing to storing. The graph is built
// and validated once at Mediator construction time with the teacher's own
// graph.Graph/graph.Node/graph.Edge machinery, then walked by invocation on
// every call via (*stepper).advance.
func buildStateMachine() (*graph.Graph, error) {
	g := graph.NewGraph("mediation-invocation")
	g.EntryNode = string(domain.InvocationIdle)

	states := []domain.InvocationState{
		domain.InvocationIdle,
		domain.InvocationResolving,
		domain.InvocationPolicyCheck,
		domain.InvocationExecuting,
		domain.InvocationValidating,
		domain.InvocationStoring,
		domain.InvocationPolicyFail,
		domain.InvocationSchemaFail,
	}
	for _, s := range states {
		node := &graph.ExecutorNode{
			BaseNode:     graph.BaseNode{ID: string(s), Type: graph.NodeTypeExecutor},
			ExecutorType: "state",
			Config:       map[string]interface{}{},
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("failed to add state node %q: %w", s, err)
		}
	}

	transitions := []struct{ from, to domain.InvocationState }{
		{domain.InvocationIdle, domain.InvocationResolving},
		{domain.InvocationResolving, domain.InvocationPolicyCheck},
		{domain.InvocationPolicyCheck, domain.InvocationExecuting},
		{domain.InvocationPolicyCheck, domain.InvocationPolicyFail},
		{domain.InvocationExecuting, domain.InvocationValidating},
		{domain.InvocationExecuting, domain.InvocationStoring},
		{domain.InvocationValidating, domain.InvocationStoring},
		{domain.InvocationValidating, domain.InvocationSchemaFail},
		{domain.InvocationStoring, domain.InvocationIdle},
		{domain.InvocationPolicyFail, domain.InvocationIdle},
		{domain.InvocationSchemaFail, domain.InvocationIdle},
	}
	for _, t := range transitions {
		edge := graph.NewEdge(string(t.from), string(t.to))
		if err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("failed to add transition %s->%s: %w", t.from, t.to, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mediation state machine: %w", err)
	}
	return g, nil
}

// stepper walks the mediation state machine for a single invocation. It is
// not safe for concurrent use; each BeforeTool/AfterTool pair owns its own
// stepper, matching the spec's single-threaded-cooperative per-session
// scheduling model.
type stepper struct {
	graph   *graph.Graph
	current domain.InvocationState

	trail       state.State
	transitions []state.Transition
	logged      int
}

// newStepper returns a stepper positioned at the idle state.
func newStepper(g *graph.Graph) *stepper {
	return &stepper{graph: g, current: domain.InvocationIdle, trail: state.NewState()}
}

// advance transitions the stepper to next, running the target node's
// Execute so the per-invocation trail (and the transition log it feeds)
// reflects every state actually entered, not just the name the caller
// requested. It panics if no edge in the state machine permits
// current -> next: this indicates a bug in the mediator's own call
// sequencing, not a runtime condition a caller can recover from.
func (s *stepper) advance(next domain.InvocationState) {
	for _, edge := range s.graph.GetOutgoingEdges(string(s.current)) {
		if edge.To != string(next) {
			continue
		}

		node := s.graph.GetNode(string(next))
		before := cloneState(s.trail)
		after, err := node.Execute(context.Background(), s.trail)
		if err != nil {
			panic(fmt.Sprintf("mediator: node %q execution failed: %v", next, err))
		}

		s.transitions = append(s.transitions, state.Transition{FromState: before, ToState: cloneState(after)})
		s.trail = after
		s.current = next
		return
	}
	panic(fmt.Sprintf("mediator: illegal state transition %s -> %s", s.current, next))
}

// drainTransitions returns the transitions recorded since the last call to
// drainTransitions, so a caller can forward each one to a TransitionLogger
// exactly once across a split BeforeTool/AfterTool pair.
func (s *stepper) drainTransitions() []state.Transition {
	pending := s.transitions[s.logged:]
	s.logged = len(s.transitions)
	out := make([]state.Transition, len(pending))
	copy(out, pending)
	return out
}

// cloneState returns a shallow copy of s, so a recorded transition's
// FromState snapshot is not mutated by the node.Execute call that produces
// the matching ToState.
func cloneState(s state.State) state.State {
	out := make(state.State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// state returns the stepper's current state.
func (s *stepper) state() domain.InvocationState {
	return s.current
}
