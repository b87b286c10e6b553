/*
Package ledger contains the core logic for the Pulse social ledger.

This file defines the Store struct, the single authoritative owner of all
entity storage. No other component holds a writable reference to ledger
state: reads hand out value copies, and every mutation goes through the
operations in ledger.go under the Store's lock.
*/
package ledger

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/codydotio/pulse/internal/pkg/logx"
)

// InitialBalance is the one-time token grant every verified user receives on
// registration. Tokens afterwards only move between users; the total supply
// grows solely through registrations.
const InitialBalance = 10

// Pulse message length bounds, in characters after trimming.
const (
	MinMessageLen = 1
	MaxMessageLen = 120
)

// Resonance amount bounds, in tokens.
const (
	MinResonanceAmount = 1
	MaxResonanceAmount = 3
)

// Store is the process-wide in-memory ledger. A single instance is created at
// process start and passed by reference to every component that needs it;
// tests isolate themselves by creating fresh instances.
//
// One coarse RWMutex guards all collections together. Every ledger operation
// is a single critical section covering its reads, validations, and writes,
// which is what keeps the balance-conservation and one-active-pulse
// invariants intact under concurrent callers. Read views take the read lock,
// so they never observe a half-applied operation. Events are published after
// the lock is released but before the operation returns, so listeners are free
// to query the store from inside their callback.
type Store struct {
	mu sync.RWMutex

	// users holds every registered user, keyed by alien id.
	users map[string]User

	// pulses holds every pulse ever created, keyed by pulse id. pulseOrder
	// records insertion order for the scans that need it.
	pulses     map[string]*Pulse
	pulseOrder []string

	// resonances is the append-only transfer log, in insertion order.
	resonances []Resonance

	// balances maps user id to spendable token count.
	balances map[string]int

	// activePulses maps user id to the id of its at most one active pulse.
	activePulses map[string]string

	bus    *Bus
	logger zerolog.Logger
}

// NewStore constructs an empty ledger store with its own event bus.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]User),
		pulses:       make(map[string]*Pulse),
		balances:     make(map[string]int),
		activePulses: make(map[string]string),
		bus:          NewBus(),
		logger:       logx.Logger().With().Str("component", "Store").Logger(),
	}
}

// Bus returns the store's event bus for subscription.
func (s *Store) Bus() *Bus {
	return s.bus
}

// Subscribe registers a listener on the store's event bus and returns the
// corresponding unsubscribe function.
func (s *Store) Subscribe(l Listener) func() {
	return s.bus.Subscribe(l)
}

// GetUser looks up a user by id. The second return value reports existence.
func (s *Store) GetUser(userID string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	return u, ok
}

// GetPulse looks up a pulse by id and returns a value copy.
// Superseded pulses stay retrievable here forever.
func (s *Store) GetPulse(pulseID string) (Pulse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pulses[pulseID]
	if !ok {
		return Pulse{}, false
	}
	return *p, true
}
