package state

import (
	"context"
	"sync"
)

// Transition represents one step of the per-invocation mediation state
// machine (see internal/mediator/statemachine.go): the state the
// invocation was in before and after handling a single before_tool/
// after_tool pair.
type Transition struct {
	SessionID string
	ToolName  string
	FromState State
	ToState   State
	Timestamp int64
}

// TransitionLogger records state-machine transitions for audit and
// debugging. A no-op implementation is valid; the mediator itself never
// reads transitions back, only appends them.
type TransitionLogger interface {
	// LogTransition records a single transition.
	LogTransition(ctx context.Context, transition Transition) error

	// GetTransitions retrieves all recorded transitions for a session.
	GetTransitions(ctx context.Context, sessionID string) ([]Transition, error)
}

// InMemoryTransitionLogger is a TransitionLogger that keeps every recorded
// transition in memory, grouped by session. It is the default logger a
// Mediator installs when none is supplied.
type InMemoryTransitionLogger struct {
	mu        sync.Mutex
	bySession map[string][]Transition
}

// NewInMemoryTransitionLogger returns an empty InMemoryTransitionLogger.
func NewInMemoryTransitionLogger() *InMemoryTransitionLogger {
	return &InMemoryTransitionLogger{bySession: make(map[string][]Transition)}
}

// LogTransition appends transition to its session's trail.
func (l *InMemoryTransitionLogger) LogTransition(ctx context.Context, transition Transition) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bySession[transition.SessionID] = append(l.bySession[transition.SessionID], transition)
	return nil
}

// GetTransitions returns the recorded transitions for sessionID, oldest
// first. The returned slice is a copy; callers may not mutate the logger's
// internal trail through it.
func (l *InMemoryTransitionLogger) GetTransitions(ctx context.Context, sessionID string) ([]Transition, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	trail := l.bySession[sessionID]
	out := make([]Transition, len(trail))
	copy(out, trail)
	return out, nil
}
