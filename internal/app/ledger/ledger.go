/*
Package ledger contains the core logic for the Pulse social ledger.

This file implements the three transactional ledger operations. Each one runs
all of its validations before any mutation, mutates under the store's write
lock as one indivisible step, and publishes its domain event synchronously
before returning. On any validation failure nothing is mutated and nothing is
published.
*/
package ledger

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/codydotio/pulse/internal/pkg/errs"
	"github.com/codydotio/pulse/internal/pkg/randx"
)

// RegisterUser registers a verified human in the ledger and grants the
// initial token balance. Registration is idempotent: a repeated call with the
// same alien id returns the existing record unchanged, without touching the
// display name or publishing anything.
func (s *Store) RegisterUser(alienID, displayName string) User {
	s.mu.Lock()

	if existing, ok := s.users[alienID]; ok {
		s.mu.Unlock()
		return existing
	}

	user := User{
		ID:          alienID,
		AlienID:     alienID,
		DisplayName: displayName,
		Verified:    true,
		CreatedAt:   time.Now().UnixMilli(),
	}
	s.users[alienID] = user
	s.balances[alienID] = InitialBalance

	s.mu.Unlock()

	s.logger.Info().Str("user_id", alienID).Msg("User registered.")
	s.bus.Publish(EventUserJoined, UserJoinedPayload{ID: alienID, Name: displayName})

	return user
}

// CreatePulse creates a new pulse for the given user and makes it the user's
// active pulse, retiring any previous one. The retired pulse row itself is
// untouched and stays queryable as history with its resonance counters
// intact. The active-index swap and the insert happen inside one critical
// section, so no caller ever observes a user with two active pulses.
func (s *Store) CreatePulse(userID, emoji, message string, mood Mood) (Pulse, *errs.CustomError) {
	s.mu.Lock()

	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return Pulse{}, errs.NewError(errs.ErrNotVerified)
	}

	trimmed := strings.TrimSpace(message)
	if n := len([]rune(trimmed)); n < MinMessageLen || n > MaxMessageLen {
		s.mu.Unlock()
		return Pulse{}, errs.NewError(errs.ErrInvalidMessage)
	}

	// Retire the previous active pulse before inserting the new one.
	delete(s.activePulses, userID)

	pulse := Pulse{
		ID:        randx.PulseID(),
		UserID:    userID,
		UserName:  user.DisplayName,
		Emoji:     emoji,
		Message:   trimmed,
		Mood:      mood,
		CreatedAt: time.Now().UnixMilli(),
		X:         galaxyCoord(),
		Y:         galaxyCoord(),
	}

	s.pulses[pulse.ID] = &pulse
	s.pulseOrder = append(s.pulseOrder, pulse.ID)
	s.activePulses[userID] = pulse.ID

	snapshot := pulse

	s.mu.Unlock()

	s.logger.Debug().Str("pulse_id", snapshot.ID).Str("user_id", userID).Str("mood", string(snapshot.Mood)).Msg("Pulse created.")
	s.bus.Publish(EventNewPulse, snapshot)

	return snapshot, nil
}

// AddResonance transfers amount tokens from the sender to the owner of the
// target pulse and records the transfer. The debit, credit, append, and pulse
// counter bump are applied atomically after all five validations pass; the
// transfer conserves the total token supply.
func (s *Store) AddResonance(fromUserID, pulseID string, amount int, txRef string) (Resonance, *errs.CustomError) {
	s.mu.Lock()

	sender, ok := s.users[fromUserID]
	if !ok {
		s.mu.Unlock()
		return Resonance{}, errs.NewError(errs.ErrNotVerified)
	}

	pulse, ok := s.pulses[pulseID]
	if !ok {
		s.mu.Unlock()
		return Resonance{}, errs.NewError(errs.ErrPulseNotFound)
	}

	if pulse.UserID == fromUserID {
		s.mu.Unlock()
		return Resonance{}, errs.NewError(errs.ErrSelfResonance)
	}

	if amount < MinResonanceAmount || amount > MaxResonanceAmount {
		s.mu.Unlock()
		return Resonance{}, errs.NewError(errs.ErrInvalidAmount)
	}

	if s.balances[fromUserID] < amount {
		s.mu.Unlock()
		return Resonance{}, errs.NewError(errs.ErrInsufficientBalance)
	}

	resonance := Resonance{
		ID:           randx.ResonanceID(),
		FromUserID:   fromUserID,
		FromUserName: sender.DisplayName,
		PulseID:      pulseID,
		Amount:       amount,
		CreatedAt:    time.Now().UnixMilli(),
		TxRef:        txRef,
	}

	s.resonances = append(s.resonances, resonance)
	s.balances[fromUserID] -= amount
	s.balances[pulse.UserID] += amount

	pulse.ResonanceCount++
	pulse.ResonanceTotal += amount

	pulseSnapshot := *pulse

	s.mu.Unlock()

	s.logger.Debug().
		Str("resonance_id", resonance.ID).
		Str("from_user_id", fromUserID).
		Str("pulse_id", pulseID).
		Int("amount", amount).
		Msg("Resonance recorded.")
	s.bus.Publish(EventResonance, ResonancePayload{Resonance: resonance, Pulse: pulseSnapshot})

	return resonance, nil
}

// galaxyCoord picks a normalized placement coordinate, kept away from the
// viewport edges. Presentation only.
func galaxyCoord() float64 {
	return 0.15 + rand.Float64()*0.7
}
