/*
Package ledger contains the core logic for the Pulse social ledger.

This file implements the aggregator: pure read views derived from the
registry on demand, never cached and never mutating. Each call takes the
store's read lock, so it observes a consistent snapshot and can run
concurrently with other reads. Everything returned is a value copy.
*/
package ledger

import "sort"

// UserState derives the per-user view: current balance, the active pulse if
// any, and counts of resonances given and received.
func (s *Store) UserState(userID string) UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := UserState{
		Balance: s.balances[userID],
	}

	if pulseID, ok := s.activePulses[userID]; ok {
		if p, ok := s.pulses[pulseID]; ok {
			snapshot := *p
			state.ActivePulse = &snapshot
		}
	}

	for _, r := range s.resonances {
		if r.FromUserID == userID {
			state.ResonancesGiven++
		}
		if p, ok := s.pulses[r.PulseID]; ok && p.UserID == userID {
			state.ResonancesReceived++
		}
	}

	return state
}

// ActivePulses returns every pulse currently in the active index, sorted
// descending by resonance total. The sort is stable over insertion order, so
// pulses with equal totals keep their relative creation order.
func (s *Store) ActivePulses() []Pulse {
	s.mu.RLock()

	activeIDs := make(map[string]struct{}, len(s.activePulses))
	for _, pulseID := range s.activePulses {
		activeIDs[pulseID] = struct{}{}
	}

	result := make([]Pulse, 0, len(activeIDs))
	for _, id := range s.pulseOrder {
		if _, ok := activeIDs[id]; ok {
			result = append(result, *s.pulses[id])
		}
	}

	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ResonanceTotal > result[j].ResonanceTotal
	})

	return result
}

// AllPulses returns every pulse ever created, newest first.
func (s *Store) AllPulses() []Pulse {
	s.mu.RLock()

	result := make([]Pulse, 0, len(s.pulseOrder))
	for _, id := range s.pulseOrder {
		result = append(result, *s.pulses[id])
	}

	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})

	return result
}

// Stats derives the aggregate mood view: totals, the dominant mood, and the
// zero-filled distribution over all eight categories. Ties for the top mood
// go to the category seen first in canonical mood order.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[Mood]int, len(Moods))
	for _, m := range Moods {
		dist[m] = 0
	}

	for _, id := range s.pulseOrder {
		dist[s.pulses[id].Mood]++
	}

	topMood := Moods[0]
	for _, m := range Moods[1:] {
		if dist[m] > dist[topMood] {
			topMood = m
		}
	}

	totalResonance := 0
	for _, r := range s.resonances {
		totalResonance += r.Amount
	}

	return Stats{
		TotalPulses:      len(s.pulseOrder),
		TotalResonance:   totalResonance,
		TopMood:          topMood,
		ActiveHumans:     len(s.users),
		MoodDistribution: dist,
	}
}

// RecentActivity merges the last limit pulses and the last limit resonances
// (both by insertion order) into one feed, sorted descending by timestamp and
// truncated to limit. The sort is stable, so entries with equal timestamps
// keep their merge order.
func (s *Store) RecentActivity(limit int) []Activity {
	if limit <= 0 {
		return []Activity{}
	}

	s.mu.RLock()

	activity := make([]Activity, 0, 2*limit)

	pulseIDs := s.pulseOrder
	if len(pulseIDs) > limit {
		pulseIDs = pulseIDs[len(pulseIDs)-limit:]
	}
	for _, id := range pulseIDs {
		p := *s.pulses[id]
		activity = append(activity, Activity{
			Type:      ActivityPulse,
			Data:      p,
			Timestamp: p.CreatedAt,
		})
	}

	resonances := s.resonances
	if len(resonances) > limit {
		resonances = resonances[len(resonances)-limit:]
	}
	for _, r := range resonances {
		entry := ResonanceActivity{Resonance: r}
		if p, ok := s.pulses[r.PulseID]; ok {
			entry.PulseEmoji = p.Emoji
			entry.PulseUserName = p.UserName
		}
		activity = append(activity, Activity{
			Type:      ActivityResonance,
			Data:      entry,
			Timestamp: r.CreatedAt,
		})
	}

	s.mu.RUnlock()

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})

	if len(activity) > limit {
		activity = activity[:limit]
	}

	return activity
}

// PulseSnapshots projects every pulse into the minimal form consumed by the
// insight collaborator. Resonances counts resonance rows targeting the pulse,
// which for seeded fixture pulses can differ from ResonanceCount.
func (s *Store) PulseSnapshots() []PulseSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rowsPerPulse := make(map[string]int, len(s.pulses))
	for _, r := range s.resonances {
		rowsPerPulse[r.PulseID]++
	}

	result := make([]PulseSnapshot, 0, len(s.pulseOrder))
	for _, id := range s.pulseOrder {
		p := s.pulses[id]
		result = append(result, PulseSnapshot{
			Mood:       p.Mood,
			Resonances: rowsPerPulse[id],
			CreatedAt:  p.CreatedAt,
		})
	}

	return result
}
