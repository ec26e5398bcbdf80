// Package session implements ports.SessionRegistry: tracking of the
// concurrently running mediation sessions, each owning one KeyRegistry and
// one Mediator.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/corvidlabs/dualmediator/internal/mediator"
	"github.com/corvidlabs/dualmediator/pkg/ports"
)

// entry bundles a session's Mediator with the bookkeeping SessionRegistry
// needs to answer Get/List without reaching into the Mediator itself.
type entry struct {
	mediator     *mediator.Mediator
	status       ports.SessionStatus
	createdAt    time.Time
	lastActivity time.Time
}

// Registry is an in-memory ports.SessionRegistry. It owns no lifecycle
// policy of its own (no automatic idle eviction); callers decide when a
// session goes idle or closed and drive that through Touch/Close.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	opts     []mediator.Option
}

// NewRegistry returns an empty Registry. opts are applied to every Mediator
// created by Register, so a host process installs its PolicyGate,
// SchemaValidator, EventBus, and MetricsCollector once.
func NewRegistry(opts ...mediator.Option) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		opts:     opts,
	}
}

// Register creates a new session's Mediator and tracks it as active. It
// returns an error if sessionID is already registered.
func (r *Registry) Register(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[sessionID]; exists {
		return fmt.Errorf("session %q is already registered", sessionID)
	}

	m, err := mediator.New(sessionID, r.opts...)
	if err != nil {
		return fmt.Errorf("failed to construct mediator for session %q: %w", sessionID, err)
	}

	now := time.Now()
	r.sessions[sessionID] = &entry{
		mediator:     m,
		status:       ports.SessionStatusActive,
		createdAt:    now,
		lastActivity: now,
	}
	return nil
}

// Mediator returns the Mediator owned by sessionID, or nil if unregistered.
func (r *Registry) Mediator(sessionID string) *mediator.Mediator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	return e.mediator
}

// Touch marks sessionID active and records the current time as its
// last-activity timestamp. keyCount is not stored: Get and List report
// KeyCount from the session's live KeyRegistry.
func (r *Registry) Touch(ctx context.Context, sessionID string, keyCount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %q is not registered", sessionID)
	}
	e.status = ports.SessionStatusActive
	e.lastActivity = time.Now()
	_ = keyCount // surfaced via Get/List from the live KeyRegistry, not stored separately
	return nil
}

// Close marks sessionID closed and clears its KeyRegistry. The session
// entry itself is retained for audit purposes; its Mediator can no longer
// resolve any key created before the close.
func (r *Registry) Close(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %q is not registered", sessionID)
	}
	e.mediator.Registry().Clear()
	e.status = ports.SessionStatusClosed
	e.lastActivity = time.Now()
	return nil
}

// Get retrieves information about sessionID.
func (r *Registry) Get(ctx context.Context, sessionID string) (*ports.SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %q is not registered", sessionID)
	}
	return toSessionInfo(sessionID, e), nil
}

// List retrieves every tracked session.
func (r *Registry) List(ctx context.Context) ([]ports.SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.SessionInfo, 0, len(r.sessions))
	for id, e := range r.sessions {
		out = append(out, *toSessionInfo(id, e))
	}
	return out, nil
}

func toSessionInfo(sessionID string, e *entry) *ports.SessionInfo {
	return &ports.SessionInfo{
		ID:           sessionID,
		Status:       e.status,
		CreatedAt:    e.createdAt,
		LastActivity: e.lastActivity,
		KeyCount:     e.mediator.Registry().Size(),
	}
}
