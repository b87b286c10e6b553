/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file handles pulse creation and the galaxy read view (active pulses plus
aggregate stats).
*/
package handler

import (
	"net/http"

	"github.com/codydotio/pulse/internal/app/ledger"
	"github.com/codydotio/pulse/internal/pkg/auth/jwt"
	"github.com/codydotio/pulse/internal/pkg/errs"
	"github.com/codydotio/pulse/internal/pkg/req"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

// CreatePulseInput carries a pulse creation request. UserID is only honored
// for callers without a session token; a token identity always wins.
type CreatePulseInput struct {
	UserID  string `json:"userId,omitempty"`
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
	Mood    string `json:"mood"`
}

// identityID resolves the acting user id: the session token when present,
// otherwise the explicit field from the request body.
func identityID(r *http.Request, bodyUserID string) string {
	if payload := jwt.GetPayloadFromContext(r); payload != nil {
		return payload.ID
	}
	return bodyUserID
}

// HandleCreatePulse creates a new pulse for the acting user.
func HandleCreatePulse(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CreatePulseInput

		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID := identityID(r, input.UserID)
		if userID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		mood, ok := ledger.ParseMood(input.Mood)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		pulse, customErr := deps.Store.CreatePulse(userID, input.Emoji, input.Message, mood)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"pulse": pulse,
		})
	}
}

// HandleGalaxy returns the current active pulses together with aggregate
// mood statistics.
func HandleGalaxy(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"pulses": deps.Store.ActivePulses(),
			"stats":  deps.Store.Stats(),
		})
	}
}
