// Package keyring implements the KeyRegistry: the store that binds opaque
// key tokens to the raw values they stand in for.
package keyring

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	mediatorerrors "github.com/corvidlabs/dualmediator/pkg/domain/errors"
)

// KeyPrefix is the textual prefix every key token carries.
const KeyPrefix = "key:"

// entry binds one key to its owned raw value and a diagnostic type hint.
type entry struct {
	value    interface{}
	typeHint string
}

// Registry maps opaque key tokens to owned raw values. It is the sole
// holder of raw data once a value has been sanitized; everything else in
// the mediation path holds only key tokens.
//
// A Registry is safe for concurrent use: Create writes, Resolve reads, both
// guarded by a single RWMutex, matched to the typical call rate described
// for a per-session registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Create allocates a fresh key, binds it to value under typeHint, and
// returns the full key token (e.g. "key:1f2e3d4c-...").  Create never fails
// in normal operation: id generation draws from the UUIDv4 space and
// collision is computationally negligible.
func (r *Registry) Create(value interface{}, typeHint string) string {
	id := uuid.New().String()

	r.mu.Lock()
	r.entries[id] = entry{value: value, typeHint: typeHint}
	r.mu.Unlock()

	return KeyPrefix + id
}

// Resolve returns the value bound to key (a full "key:<id>" token). It
// returns an *errors.UnknownKeyError if the token does not resolve to an
// entry held by this registry.
func (r *Registry) Resolve(key string) (interface{}, error) {
	id, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return nil, mediatorerrors.NewUnknownKeyError(key)
	}

	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, mediatorerrors.NewUnknownKeyError(key)
	}
	return e.value, nil
}

// Has reports whether key resolves to an entry in this registry, without
// returning its value.
func (r *Registry) Has(key string) bool {
	id, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return false
	}
	r.mu.RLock()
	_, ok = r.entries[id]
	r.mu.RUnlock()
	return ok
}

// Clear drops all entries atomically. Existing key tokens become unresolvable.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.entries = make(map[string]entry)
	r.mu.Unlock()
}

// Size returns the number of entries currently held.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// createWithID is used internally by tests that need a deterministic id;
// it rejects ids containing the "key:" delimiter character to preserve the
// invariant that token detection is unambiguous.
func (r *Registry) createWithID(id string, value interface{}, typeHint string) (string, error) {
	if strings.Contains(id, ":") {
		return "", fmt.Errorf("key id %q must not contain ':'", id)
	}
	r.mu.Lock()
	r.entries[id] = entry{value: value, typeHint: typeHint}
	r.mu.Unlock()
	return KeyPrefix + id, nil
}
