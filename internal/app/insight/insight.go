/*
Package insight derives natural-language mood commentary from read-only
aggregator snapshots.

The analysis is a pure function over pulse snapshots: it never touches ledger
state and holds no state of its own between calls. Output text is drawn from
fixed template pools keyed by the community's dominant mood.
*/
package insight

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/codydotio/pulse/internal/app/ledger"
)

// Insight kinds.
const (
	TypeCommunity  = "community"
	TypePersonal   = "personal"
	TypeSuggestion = "suggestion"
)

// Mood shift directions.
const (
	ShiftBrightening = "brightening"
	ShiftDeepening   = "deepening"
	ShiftSteady      = "steady"
)

// analysisWindow is how far back a pulse still counts as recent.
const analysisWindow = time.Hour

// Insight is one generated observation about the community or the caller.
type Insight struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Message    string      `json:"message"`
	Mood       ledger.Mood `json:"mood,omitempty"`
	Confidence float64     `json:"confidence"`
	CreatedAt  int64       `json:"createdAt"`
	IsAI       bool        `json:"isAI"`
}

// Report is the full analysis result for one snapshot of the galaxy.
type Report struct {
	Insights     []Insight   `json:"insights"`
	DominantMood ledger.Mood `json:"dominantMood"`
	MoodShift    string      `json:"moodShift"`
	EmpathyScore int         `json:"empathyScore"`
	LastAnalysis int64       `json:"lastAnalysis"`
}

// communityTemplates holds the per-mood template pools for community
// insights. {count} expands to the dominant mood's pulse count.
var communityTemplates = map[ledger.Mood][]string{
	ledger.MoodJoy: {
		"The community is radiating joy right now — {count} happy pulses in the last hour",
		"Joy is contagious today! The galaxy is glowing with positive energy",
	},
	ledger.MoodGratitude: {
		"A wave of gratitude is washing through the community. Beautiful.",
		"People are feeling thankful — {count} gratitude pulses and counting",
	},
	ledger.MoodHope: {
		"Hope is the dominant frequency right now. The community believes in better tomorrows",
		"Hopeful energy is building — {count} people are looking forward",
	},
	ledger.MoodCalm: {
		"The community has found a peaceful wavelength. Calm energy prevails",
		"A gentle calm has settled over the galaxy. Breathe it in.",
	},
	ledger.MoodEnergy: {
		"High energy! The community is buzzing with excitement and drive",
		"Electric vibes — {count} people are feeling energized right now",
	},
	ledger.MoodLove: {
		"Love is in the air! The community is sharing warmth and connection",
		"Hearts are open today — love pulses are lighting up the galaxy",
	},
	ledger.MoodReflection: {
		"The community is in a reflective mood. Deep thoughts are being shared",
		"A contemplative energy has taken hold. People are looking inward",
	},
	ledger.MoodDetermination: {
		"Determination is surging! The community is focused and driven",
		"Strong resolve — people are pushing through challenges together",
	},
}

// empathyPrompts is the pool of resonance-nudging suggestions.
var empathyPrompts = []string{
	"Someone shared a vulnerable moment. Your resonance could mean the world to them.",
	"A pulse nearby is waiting to be heard. Sometimes all we need is to know someone cares.",
	"The community thrives on connection. Have you resonated with someone today?",
	"Every resonance strengthens the emotional fabric of this community.",
	"Someone's joy deserves celebration. Someone's struggle deserves support.",
	"Your emotional presence matters here. Share what you're feeling.",
}

// moodEmojis maps each mood to the emoji appended to personal insights.
var moodEmojis = map[ledger.Mood]string{
	ledger.MoodJoy:           "😊",
	ledger.MoodGratitude:     "🙏",
	ledger.MoodHope:          "🌅",
	ledger.MoodCalm:          "🧘",
	ledger.MoodEnergy:        "⚡",
	ledger.MoodLove:          "❤️",
	ledger.MoodReflection:    "🤔",
	ledger.MoodDetermination: "💪",
}

// positiveMoods is the subset counted toward a brightening mood shift.
var positiveMoods = map[ledger.Mood]struct{}{
	ledger.MoodJoy:       {},
	ledger.MoodGratitude: {},
	ledger.MoodHope:      {},
	ledger.MoodLove:      {},
	ledger.MoodEnergy:    {},
}

// Analyze derives a Report from the given pulse snapshots. userMood, when
// non-empty, adds a personal insight relating the caller's current mood to
// the community's.
func Analyze(snapshots []ledger.PulseSnapshot, userMood ledger.Mood) Report {
	now := time.Now().UnixMilli()
	windowMs := analysisWindow.Milliseconds()

	recent := make([]ledger.PulseSnapshot, 0, len(snapshots))
	for _, p := range snapshots {
		if p.CreatedAt > now-windowMs {
			recent = append(recent, p)
		}
	}

	moodCounts := make(map[ledger.Mood]int)
	for _, p := range recent {
		moodCounts[p.Mood]++
	}

	dominantMood := dominant(moodCounts)
	dominantCount := moodCounts[dominantMood]

	insights := make([]Insight, 0, 3)

	templates := communityTemplates[dominantMood]
	template := templates[rand.IntN(len(templates))]
	insights = append(insights, Insight{
		ID:         fmt.Sprintf("ai_community_%d", now),
		Type:       TypeCommunity,
		Message:    strings.ReplaceAll(template, "{count}", fmt.Sprintf("%d", dominantCount)),
		Mood:       dominantMood,
		Confidence: min(0.95, 0.5+float64(dominantCount)*0.05),
		CreatedAt:  now,
		IsAI:       true,
	})

	insights = append(insights, Insight{
		ID:         fmt.Sprintf("ai_empathy_%d", now),
		Type:       TypeSuggestion,
		Message:    empathyPrompts[rand.IntN(len(empathyPrompts))],
		Confidence: 0.8,
		CreatedAt:  now,
		IsAI:       true,
	})

	if userMood != "" {
		insights = append(insights, personalInsight(userMood, moodCounts[userMood], now))
	}

	totalResonances := 0
	for _, p := range recent {
		totalResonances += p.Resonances
	}

	return Report{
		Insights:     insights,
		DominantMood: dominantMood,
		MoodShift:    moodShift(snapshots, recent, now, windowMs),
		EmpathyScore: min(100, totalResonances*5+len(recent)*3),
		LastAnalysis: now,
	}
}

// dominant picks the mood with the highest count, walking the canonical mood
// order so ties resolve deterministically. An empty galaxy reads as calm.
func dominant(moodCounts map[ledger.Mood]int) ledger.Mood {
	if len(moodCounts) == 0 {
		return ledger.MoodCalm
	}

	best := ledger.Mood("")
	for _, m := range ledger.Moods {
		if best == "" && moodCounts[m] > 0 {
			best = m
			continue
		}
		if best != "" && moodCounts[m] > moodCounts[best] {
			best = m
		}
	}

	if best == "" {
		return ledger.MoodCalm
	}
	return best
}

// personalInsight relates the caller's mood to how many recent pulses share it.
func personalInsight(userMood ledger.Mood, sameMoodCount int, now int64) Insight {
	emoji := moodEmojis[userMood]

	var message string
	if sameMoodCount > 1 {
		message = fmt.Sprintf("You're not alone in feeling %s — %d others share this wavelength right now %s", userMood, sameMoodCount, emoji)
	} else {
		message = fmt.Sprintf("Your %s pulse adds a unique frequency to the galaxy %s", userMood, emoji)
	}

	return Insight{
		ID:         fmt.Sprintf("ai_personal_%d", now),
		Type:       TypePersonal,
		Message:    message,
		Mood:       userMood,
		Confidence: 0.75,
		CreatedAt:  now,
		IsAI:       true,
	}
}

// moodShift compares the positive-mood ratio of the last hour against the
// hour before it. A swing of more than ten points either way counts as a
// shift.
func moodShift(all, recent []ledger.PulseSnapshot, now, windowMs int64) string {
	older := make([]ledger.PulseSnapshot, 0)
	for _, p := range all {
		if p.CreatedAt > now-2*windowMs && p.CreatedAt <= now-windowMs {
			older = append(older, p)
		}
	}

	recentPositive := positiveRatio(recent)
	olderPositive := positiveRatio(older)

	switch {
	case recentPositive > olderPositive+0.1:
		return ShiftBrightening
	case recentPositive < olderPositive-0.1:
		return ShiftDeepening
	default:
		return ShiftSteady
	}
}

// positiveRatio is the fraction of snapshots carrying a positive mood.
func positiveRatio(snapshots []ledger.PulseSnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}

	positive := 0
	for _, p := range snapshots {
		if _, ok := positiveMoods[p.Mood]; ok {
			positive++
		}
	}

	return float64(positive) / float64(len(snapshots))
}
