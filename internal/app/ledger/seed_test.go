package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	s := NewStore()
	s.Seed()

	pulses := s.AllPulses()
	require.Len(t, pulses, 12)

	stats := s.Stats()
	assert.Equal(t, 12, stats.ActiveHumans)
	assert.Equal(t, 12, stats.TotalPulses)
	assert.Positive(t, stats.TotalResonance)

	// Every fixture user holds the full starting balance and one active pulse.
	for _, p := range pulses {
		state := s.UserState(p.UserID)
		assert.Equal(t, InitialBalance, state.Balance)
		require.NotNil(t, state.ActivePulse)
		assert.Equal(t, p.UserID, state.ActivePulse.UserID)
	}

	active := s.ActivePulses()
	assert.Len(t, active, 12)

	// Fixture pulses carry preloaded counters and are sorted by them.
	for i := 1; i < len(active); i++ {
		assert.GreaterOrEqual(t, active[i-1].ResonanceTotal, active[i].ResonanceTotal)
	}
}

func TestSeedIdempotent(t *testing.T) {
	s := NewStore()
	s.Seed()
	s.Seed()

	assert.Equal(t, 12, s.Stats().ActiveHumans)
	assert.Len(t, s.AllPulses(), 12)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")

	s.Seed()

	assert.Equal(t, 1, s.Stats().ActiveHumans)
	assert.Empty(t, s.AllPulses())
}

func TestSeedPublishesNothing(t *testing.T) {
	s := NewStore()
	rec := record(s)

	s.Seed()

	assert.Empty(t, rec.events)
}
