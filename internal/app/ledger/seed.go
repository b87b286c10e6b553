/*
Package ledger contains the core logic for the Pulse social ledger.

This file provides the optional demo fixture used for demonstrations: a dozen
verified users with one active pulse each, carrying preloaded resonance
counters so the galaxy is not empty on first load. The fixture bypasses the
ledger operations on purpose; it paints history directly into the registry
and publishes nothing.
*/
package ledger

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// demoPulseSpacing staggers fixture pulse creation times so the feed has a
// plausible timeline.
const demoPulseSpacing = 4 * time.Minute

type demoUser struct {
	id   string
	name string
}

type demoPulse struct {
	userID    string
	emoji     string
	message   string
	mood      Mood
	resonance int
}

var demoUsers = []demoUser{
	{"alien_p01", "Aria"},
	{"alien_p02", "Zephyr"},
	{"alien_p03", "Luna"},
	{"alien_p04", "Kai"},
	{"alien_p05", "Ember"},
	{"alien_p06", "Nova"},
	{"alien_p07", "Sage"},
	{"alien_p08", "River"},
	{"alien_p09", "Phoenix"},
	{"alien_p10", "Wren"},
	{"alien_p11", "Indigo"},
	{"alien_p12", "Soleil"},
}

var demoPulses = []demoPulse{
	{"alien_p01", "✨", "Building something that matters today. This feeling is everything.", MoodDetermination, 5},
	{"alien_p02", "🌊", "Found stillness in the chaos of a hackathon. Breathing.", MoodCalm, 3},
	{"alien_p03", "💛", "A stranger just helped me fix a bug. Humans are amazing.", MoodGratitude, 8},
	{"alien_p04", "🚀", "3 hours in and the code is FLOWING. Pure creative energy.", MoodEnergy, 4},
	{"alien_p05", "🌅", "We're building the future in this room right now.", MoodHope, 6},
	{"alien_p06", "😄", "Just had the best conversation of my life in the elevator.", MoodJoy, 7},
	{"alien_p07", "💭", "What if identity is the foundation of everything good online?", MoodReflection, 4},
	{"alien_p08", "❤️", "To everyone here: you belong. You are enough.", MoodLove, 12},
	{"alien_p09", "⚡", "Sleep is for after the demo. Let's SHIP.", MoodEnergy, 6},
	{"alien_p10", "🙏", "Thank you Frontier Tower for this space. Magic happens here.", MoodGratitude, 5},
	{"alien_p11", "🔮", "Somewhere in this building is the next big thing. I can feel it.", MoodHope, 3},
	{"alien_p12", "🥰", "My team just surprised me with coffee. It's the little things.", MoodLove, 9},
}

// Seed populates an empty store with the demo fixture. A store that already
// holds users is left untouched, so calling Seed twice is harmless.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return
	}

	now := time.Now().UnixMilli()

	for _, u := range demoUsers {
		s.users[u.id] = User{
			ID:          u.id,
			AlienID:     u.id,
			DisplayName: u.name,
			Verified:    true,
			CreatedAt:   now - int64(rand.Float64()*float64(time.Hour.Milliseconds())),
		}
		s.balances[u.id] = InitialBalance
	}

	for i, p := range demoPulses {
		pulse := &Pulse{
			ID:             demoPulseID(i),
			UserID:         p.userID,
			UserName:       s.users[p.userID].DisplayName,
			Emoji:          p.emoji,
			Message:        p.message,
			Mood:           p.mood,
			ResonanceCount: p.resonance,
			ResonanceTotal: p.resonance,
			CreatedAt:      now - int64(len(demoPulses)-i)*demoPulseSpacing.Milliseconds(),
			X:              galaxyCoord(),
			Y:              galaxyCoord(),
		}

		s.pulses[pulse.ID] = pulse
		s.pulseOrder = append(s.pulseOrder, pulse.ID)
		s.activePulses[p.userID] = pulse.ID
	}

	s.logger.Info().
		Int("users", len(demoUsers)).
		Int("pulses", len(demoPulses)).
		Msg("Ledger seeded with demo fixture.")
}

// demoPulseID derives a stable fixture pulse id from its index.
func demoPulseID(i int) string {
	return fmt.Sprintf("pulse_demo_%d", i)
}
