package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pause keeps successive entity timestamps strictly increasing at
// millisecond resolution, so feed-ordering assertions are deterministic.
func pause() {
	time.Sleep(3 * time.Millisecond)
}

func TestUserStateEmpty(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")

	state := s.UserState("alien_u1")

	assert.Equal(t, InitialBalance, state.Balance)
	assert.Nil(t, state.ActivePulse)
	assert.Zero(t, state.ResonancesGiven)
	assert.Zero(t, state.ResonancesReceived)

	// Unknown users read as empty, not as an error.
	assert.Equal(t, UserState{}, s.UserState("alien_ghost"))
}

func TestUserStateCounts(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")
	s.RegisterUser("alien_u2", "Zephyr")

	p1, customErr := s.CreatePulse("alien_u1", "✨", "hello", MoodJoy)
	require.Nil(t, customErr)
	p2, customErr := s.CreatePulse("alien_u2", "🌊", "there", MoodCalm)
	require.Nil(t, customErr)

	_, customErr = s.AddResonance("alien_u2", p1.ID, 2, "")
	require.Nil(t, customErr)
	_, customErr = s.AddResonance("alien_u1", p2.ID, 1, "")
	require.Nil(t, customErr)
	_, customErr = s.AddResonance("alien_u1", p2.ID, 1, "")
	require.Nil(t, customErr)

	u1 := s.UserState("alien_u1")
	assert.Equal(t, 2, u1.ResonancesGiven)
	assert.Equal(t, 1, u1.ResonancesReceived)

	u2 := s.UserState("alien_u2")
	assert.Equal(t, 1, u2.ResonancesGiven)
	assert.Equal(t, 2, u2.ResonancesReceived)

	// Received counts follow pulse ownership even after superseding.
	_, customErr = s.CreatePulse("alien_u1", "💭", "new one", MoodReflection)
	require.Nil(t, customErr)
	assert.Equal(t, 1, s.UserState("alien_u1").ResonancesReceived)
}

func TestActivePulsesSorting(t *testing.T) {
	s := NewStore()
	for _, u := range []struct{ id, name string }{
		{"alien_a", "A"}, {"alien_b", "B"}, {"alien_c", "C"}, {"alien_d", "D"},
	} {
		s.RegisterUser(u.id, u.name)
	}

	pa, customErr := s.CreatePulse("alien_a", "✨", "from a", MoodJoy)
	require.Nil(t, customErr)
	pb, customErr := s.CreatePulse("alien_b", "🌊", "from b", MoodCalm)
	require.Nil(t, customErr)
	pc, customErr := s.CreatePulse("alien_c", "💭", "from c", MoodReflection)
	require.Nil(t, customErr)

	_, customErr = s.AddResonance("alien_d", pb.ID, 3, "")
	require.Nil(t, customErr)

	active := s.ActivePulses()
	require.Len(t, active, 3)

	// Highest resonance total first; the zero-total tie keeps creation order.
	assert.Equal(t, pb.ID, active[0].ID)
	assert.Equal(t, pa.ID, active[1].ID)
	assert.Equal(t, pc.ID, active[2].ID)
}

func TestStats(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")
	s.RegisterUser("alien_u2", "Zephyr")

	p1, customErr := s.CreatePulse("alien_u1", "✨", "one", MoodHope)
	require.Nil(t, customErr)
	p2, customErr := s.CreatePulse("alien_u2", "🌊", "two", MoodGratitude)
	require.Nil(t, customErr)

	// Supersede p1; it still counts toward the totals.
	_, customErr = s.CreatePulse("alien_u1", "💭", "three", MoodHope)
	require.Nil(t, customErr)

	_, customErr = s.AddResonance("alien_u2", p1.ID, 3, "")
	require.Nil(t, customErr)
	_, customErr = s.AddResonance("alien_u1", p2.ID, 1, "")
	require.Nil(t, customErr)

	stats := s.Stats()
	assert.Equal(t, 3, stats.TotalPulses)
	assert.Equal(t, 4, stats.TotalResonance)
	assert.Equal(t, 2, stats.ActiveHumans)
	assert.Equal(t, MoodHope, stats.TopMood)

	// All eight categories present, zero-filled, summing to the pulse count.
	require.Len(t, stats.MoodDistribution, len(Moods))
	sum := 0
	for _, m := range Moods {
		count, ok := stats.MoodDistribution[m]
		require.True(t, ok)
		sum += count
	}
	assert.Equal(t, stats.TotalPulses, sum)
	assert.Zero(t, stats.MoodDistribution[MoodLove])
}

func TestStatsEmpty(t *testing.T) {
	s := NewStore()

	stats := s.Stats()

	assert.Zero(t, stats.TotalPulses)
	assert.Zero(t, stats.TotalResonance)
	assert.Zero(t, stats.ActiveHumans)
	assert.Len(t, stats.MoodDistribution, len(Moods))

	// With all counts zero the first canonical mood wins.
	assert.Equal(t, MoodJoy, stats.TopMood)
}

func TestStatsTopMoodTie(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")
	s.RegisterUser("alien_u2", "Zephyr")

	// One hope, one gratitude: the tie resolves to the category that comes
	// first in canonical mood order.
	_, customErr := s.CreatePulse("alien_u1", "🌅", "hopeful", MoodHope)
	require.Nil(t, customErr)
	_, customErr = s.CreatePulse("alien_u2", "🙏", "thankful", MoodGratitude)
	require.Nil(t, customErr)

	assert.Equal(t, MoodGratitude, s.Stats().TopMood)
}

func TestRecentActivity(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")
	s.RegisterUser("alien_u2", "Zephyr")

	p1, customErr := s.CreatePulse("alien_u1", "✨", "first", MoodJoy)
	require.Nil(t, customErr)
	pause()
	p2, customErr := s.CreatePulse("alien_u2", "🌊", "second", MoodCalm)
	require.Nil(t, customErr)
	pause()
	res, customErr := s.AddResonance("alien_u2", p1.ID, 2, "")
	require.Nil(t, customErr)

	activity := s.RecentActivity(10)
	require.Len(t, activity, 3)

	// Newest first.
	assert.Equal(t, ActivityResonance, activity[0].Type)
	assert.Equal(t, ActivityPulse, activity[1].Type)
	assert.Equal(t, ActivityPulse, activity[2].Type)

	entry, ok := activity[0].Data.(ResonanceActivity)
	require.True(t, ok)
	assert.Equal(t, res.ID, entry.ID)
	assert.Equal(t, "✨", entry.PulseEmoji)
	assert.Equal(t, "Aria", entry.PulseUserName)

	first, ok := activity[1].Data.(Pulse)
	require.True(t, ok)
	assert.Equal(t, p2.ID, first.ID)

	// Truncation keeps only the newest entries.
	truncated := s.RecentActivity(2)
	require.Len(t, truncated, 2)
	assert.Equal(t, ActivityResonance, truncated[0].Type)

	assert.Empty(t, s.RecentActivity(0))
}

func TestPulseSnapshots(t *testing.T) {
	s := NewStore()
	s.RegisterUser("alien_u1", "Aria")
	s.RegisterUser("alien_u2", "Zephyr")

	p1, customErr := s.CreatePulse("alien_u1", "✨", "first", MoodJoy)
	require.Nil(t, customErr)
	_, customErr = s.CreatePulse("alien_u2", "🌊", "second", MoodCalm)
	require.Nil(t, customErr)

	_, customErr = s.AddResonance("alien_u2", p1.ID, 2, "")
	require.Nil(t, customErr)
	_, customErr = s.AddResonance("alien_u2", p1.ID, 1, "")
	require.Nil(t, customErr)

	snapshots := s.PulseSnapshots()
	require.Len(t, snapshots, 2)

	assert.Equal(t, MoodJoy, snapshots[0].Mood)
	assert.Equal(t, 2, snapshots[0].Resonances)
	assert.Equal(t, MoodCalm, snapshots[1].Mood)
	assert.Zero(t, snapshots[1].Resonances)
}
