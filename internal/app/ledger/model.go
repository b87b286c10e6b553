/*
Package ledger contains the core logic for the Pulse social ledger: the
authoritative in-memory registry of users, pulses, resonances, and token
balances, the transactional operations over it, the derived read views, and
the event bus that fans domain events out to listeners.

This file defines the entity types stored in the registry and the derived
view types returned by read operations. Timestamps are Unix milliseconds,
matching the creation-time-derived entity ids.
*/
package ledger

// Mood is one of the eight fixed emotional categories attached to every pulse.
type Mood string

// The eight mood categories, in canonical order. The order matters: mood
// enumeration (distribution keys, top-mood tie-breaking) always walks Moods
// front to back.
const (
	MoodJoy           Mood = "joy"
	MoodGratitude     Mood = "gratitude"
	MoodHope          Mood = "hope"
	MoodCalm          Mood = "calm"
	MoodEnergy        Mood = "energy"
	MoodLove          Mood = "love"
	MoodReflection    Mood = "reflection"
	MoodDetermination Mood = "determination"
)

// Moods lists every mood category in canonical order.
var Moods = []Mood{
	MoodJoy,
	MoodGratitude,
	MoodHope,
	MoodCalm,
	MoodEnergy,
	MoodLove,
	MoodReflection,
	MoodDetermination,
}

// ParseMood maps a raw string onto a Mood category.
// The second return value reports whether the string named a known category.
func ParseMood(s string) (Mood, bool) {
	for _, m := range Moods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// User represents a verified human registered in the ledger.
// Users are created on first registration and never mutated or deleted.
type User struct {
	// ID is the stable, caller-supplied unique identifier.
	ID string `json:"id"`

	// AlienID mirrors ID; it is the identifier handed over by the identity provider.
	AlienID string `json:"alienId"`

	// DisplayName is the name captured at registration time.
	DisplayName string `json:"displayName"`

	// Verified is always true for registered users.
	Verified bool `json:"verified"`

	// CreatedAt is the registration time in Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// Pulse is a short emotional broadcast owned by one user.
// Only the resonance counters ever change after creation, and they only grow.
// Pulses are never deleted: a superseded pulse stays queryable as history.
type Pulse struct {
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// UserName is the owner's display name, captured at creation time.
	// It is deliberately a snapshot, not a live join against the user table.
	UserName string `json:"userName"`

	Emoji   string `json:"emoji"`
	Message string `json:"message"`
	Mood    Mood   `json:"mood"`

	// ResonanceCount is how many resonances this pulse has received.
	ResonanceCount int `json:"resonanceCount"`

	// ResonanceTotal is the sum of token amounts this pulse has received.
	ResonanceTotal int `json:"resonanceTotal"`

	CreatedAt int64 `json:"createdAt"`

	// X and Y are normalized galaxy placement coordinates, used only by the
	// presentation layer.
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Resonance is an append-only record of a token transfer from one user to a
// pulse's owner.
type Resonance struct {
	ID string `json:"id"`

	// FromUserID is the sender.
	FromUserID string `json:"fromUserId"`

	// FromUserName is the sender's display name, captured at creation time.
	FromUserName string `json:"fromUserName"`

	// PulseID is the pulse the sender resonated with.
	PulseID string `json:"pulseId"`

	// Amount is the number of tokens transferred, always within [1,3].
	Amount int `json:"amount"`

	CreatedAt int64 `json:"createdAt"`

	// TxRef is an opaque external transaction reference, when present.
	TxRef string `json:"txRef,omitempty"`
}

// UserState is the per-user derived view: spendable balance, the current
// active pulse (nil when the user has none), and resonance participation.
type UserState struct {
	Balance            int    `json:"balance"`
	ActivePulse        *Pulse `json:"activePulse"`
	ResonancesGiven    int    `json:"resonancesGiven"`
	ResonancesReceived int    `json:"resonancesReceived"`
}

// Stats is the aggregate mood view over the whole ledger. MoodDistribution
// always contains all eight categories, zero-filled.
type Stats struct {
	TotalPulses      int          `json:"totalPulses"`
	TotalResonance   int          `json:"totalResonance"`
	TopMood          Mood         `json:"topMood"`
	ActiveHumans     int          `json:"activeHumans"`
	MoodDistribution map[Mood]int `json:"moodDistribution"`
}

// Activity is one entry of the recent-activity feed: a pulse or a resonance,
// tagged with its kind and creation timestamp.
type Activity struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Activity entry kinds.
const (
	ActivityPulse     = "pulse"
	ActivityResonance = "resonance"
)

// ResonanceActivity is the feed representation of a resonance, enriched with
// display fields of the target pulse.
type ResonanceActivity struct {
	Resonance

	PulseEmoji    string `json:"pulseEmoji,omitempty"`
	PulseUserName string `json:"pulseUserName,omitempty"`
}

// PulseSnapshot is the minimal read-only projection handed to the insight
// collaborator: mood, number of resonance rows targeting the pulse, and
// creation time.
type PulseSnapshot struct {
	Mood       Mood  `json:"mood"`
	Resonances int   `json:"resonances"`
	CreatedAt  int64 `json:"createdAt"`
}
