package ports

import (
	"context"
	"time"
)

// SessionStatus represents the current lifecycle status of a mediated
// session.
type SessionStatus string

const (
	// SessionStatusActive means the session has an open KeyRegistry and is
	// currently mediating tool calls.
	SessionStatusActive SessionStatus = "active"

	// SessionStatusIdle means the session exists but has not mediated a
	// tool call recently.
	SessionStatusIdle SessionStatus = "idle"

	// SessionStatusClosed means the session's registry has been cleared and
	// the session entry is retained only for audit purposes.
	SessionStatusClosed SessionStatus = "closed"
)

// SessionInfo describes one registered mediation session.
type SessionInfo struct {
	// ID is the unique identifier for this session.
	ID string `json:"id"`

	// Status is the current status of the session.
	Status SessionStatus `json:"status"`

	// CreatedAt is when the session was first registered.
	CreatedAt time.Time `json:"created_at"`

	// LastActivity is the timestamp of the last mediated tool call.
	LastActivity time.Time `json:"last_activity"`

	// KeyCount is the number of entries currently held by the session's
	// KeyRegistry.
	KeyCount int `json:"key_count"`

	// Metadata contains additional session-specific information.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SessionRegistry defines the interface for tracking concurrently running
// mediation sessions, each of which owns one KeyRegistry and one Mediator.
type SessionRegistry interface {
	// Register creates a new session entry.
	Register(ctx context.Context, sessionID string) error

	// Touch updates a session's LastActivity and KeyCount.
	Touch(ctx context.Context, sessionID string, keyCount int) error

	// Close marks a session closed.
	Close(ctx context.Context, sessionID string) error

	// Get retrieves information about a specific session.
	Get(ctx context.Context, sessionID string) (*SessionInfo, error)

	// List retrieves all tracked sessions.
	List(ctx context.Context) ([]SessionInfo, error)
}
