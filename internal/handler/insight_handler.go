/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file exposes the insight collaborator: template-driven emotional
commentary derived from a read-only snapshot of the galaxy.
*/
package handler

import (
	"net/http"

	"github.com/codydotio/pulse/internal/app/insight"
	"github.com/codydotio/pulse/internal/app/ledger"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

// HandleInsights runs the emotional analysis over the current pulse
// snapshots. The optional mood query parameter adds a personal insight for
// the caller's current mood; an unknown mood is simply ignored.
func HandleInsights(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userMood ledger.Mood
		if moodStr := r.URL.Query().Get("mood"); moodStr != "" {
			if mood, ok := ledger.ParseMood(moodStr); ok {
				userMood = mood
			}
		}

		report := insight.Analyze(deps.Store.PulseSnapshots(), userMood)

		resp.RespondSuccess(w, r, report)
	}
}
