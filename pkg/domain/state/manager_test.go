package state

import (
	"context"
	"testing"
)

func TestInMemoryTransitionLogger_LogAndGet(t *testing.T) {
	l := NewInMemoryTransitionLogger()
	ctx := context.Background()

	err := l.LogTransition(ctx, Transition{
		SessionID: "session-1",
		ToolName:  "get_balance",
		FromState: State{"_visited": []string{"resolving"}},
		ToState:   State{"_visited": []string{"resolving", "policy_check"}},
		Timestamp: 100,
	})
	if err != nil {
		t.Fatalf("LogTransition failed: %v", err)
	}

	transitions, err := l.GetTransitions(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetTransitions failed: %v", err)
	}
	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(transitions))
	}
	if transitions[0].ToolName != "get_balance" {
		t.Errorf("expected tool name get_balance, got %q", transitions[0].ToolName)
	}
}

func TestInMemoryTransitionLogger_SeparatesSessions(t *testing.T) {
	l := NewInMemoryTransitionLogger()
	ctx := context.Background()

	_ = l.LogTransition(ctx, Transition{SessionID: "a", ToolName: "x"})
	_ = l.LogTransition(ctx, Transition{SessionID: "b", ToolName: "y"})

	aTransitions, _ := l.GetTransitions(ctx, "a")
	bTransitions, _ := l.GetTransitions(ctx, "b")
	if len(aTransitions) != 1 || len(bTransitions) != 1 {
		t.Fatalf("expected one transition per session, got a=%d b=%d", len(aTransitions), len(bTransitions))
	}
}

func TestInMemoryTransitionLogger_UnknownSessionReturnsEmpty(t *testing.T) {
	l := NewInMemoryTransitionLogger()
	transitions, err := l.GetTransitions(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("GetTransitions failed: %v", err)
	}
	if len(transitions) != 0 {
		t.Errorf("expected no transitions for unknown session, got %d", len(transitions))
	}
}
