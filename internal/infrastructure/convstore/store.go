// Package convstore provides the keyed store for in-progress chat
// conversations. It is the only shared mutable resource in the service:
// state is read-modified-written once per inbound chat message, keyed by
// user id, with at most one state per user. Entries carry a TTL so an
// abandoned conversation cannot pin memory forever.
package convstore

import (
	"context"
	"sync"
	"time"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/timeutil"
)

// DefaultTTL bounds how long an abandoned conversation is kept.
const DefaultTTL = 30 * time.Minute

// Store is the port for conversation state and webhook-event bookkeeping.
type Store interface {
	// Get returns the state for the user, or found=false when there is none
	// (including when it has expired).
	Get(ctx context.Context, userID string) (state *domain.ConversationState, found bool, err error)

	// Put stores the state for the user, resetting its TTL and overwriting
	// any prior state.
	Put(ctx context.Context, userID string, state *domain.ConversationState) error

	// Delete removes the user's state. Deleting a missing key is not an error.
	Delete(ctx context.Context, userID string) error

	// MarkEventSeen records a webhook event id and reports whether this call
	// was the first to see it. Redelivered events return false and must be
	// suppressed by the caller.
	MarkEventSeen(ctx context.Context, eventID string) (first bool, err error)
}

// memoryEntry is a stored state with its expiry deadline.
type memoryEntry struct {
	state     domain.ConversationState
	expiresAt time.Time
}

// Memory is an in-process Store guarded by a mutex. Expired entries are
// dropped lazily on access.
type Memory struct {
	mu     sync.Mutex
	states map[string]memoryEntry
	events map[string]time.Time
	ttl    time.Duration
	clock  timeutil.Clock
}

// NewMemory creates an in-memory store with the given TTL.
// A ttl of zero falls back to DefaultTTL.
func NewMemory(ttl time.Duration, clock timeutil.Clock) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Memory{
		states: make(map[string]memoryEntry),
		events: make(map[string]time.Time),
		ttl:    ttl,
		clock:  clock,
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, userID string) (*domain.ConversationState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.states[userID]
	if !ok {
		return nil, false, nil
	}
	if m.clock.Now().After(entry.expiresAt) {
		delete(m.states, userID)
		return nil, false, nil
	}

	state := entry.state
	return &state, true, nil
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, userID string, state *domain.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[userID] = memoryEntry{
		state:     *state,
		expiresAt: m.clock.Now().Add(m.ttl),
	}
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, userID)
	return nil
}

// MarkEventSeen implements Store.
func (m *Memory) MarkEventSeen(_ context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if seenAt, ok := m.events[eventID]; ok && now.Before(seenAt.Add(m.ttl)) {
		return false, nil
	}

	// Drop stale entries opportunistically so the map stays bounded.
	for id, seenAt := range m.events {
		if now.After(seenAt.Add(m.ttl)) {
			delete(m.events, id)
		}
	}

	m.events[eventID] = now
	return true, nil
}

// Ensure Memory implements Store at compile time.
var _ Store = (*Memory)(nil)
