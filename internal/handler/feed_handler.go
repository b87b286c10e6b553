/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file handles the recent-activity feed and the per-user state view.
*/
package handler

import (
	"net/http"
	"strconv"

	"github.com/codydotio/pulse/internal/pkg/auth/jwt"
	"github.com/codydotio/pulse/internal/pkg/errs"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

const (
	// DefaultFeedLimit is how many activity entries the feed returns when the
	// caller does not ask for a specific count.
	DefaultFeedLimit = 30

	// MaxFeedLimit caps the feed size a single request can ask for.
	MaxFeedLimit = 100
)

// HandleFeed returns the merged recent-activity feed of pulses and resonances.
func HandleFeed(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultFeedLimit

		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			limit = min(parsed, MaxFeedLimit)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"activity": deps.Store.RecentActivity(limit),
		})
	}
}

// HandleUserState returns the ledger state of the acting user: balance,
// active pulse, and resonance participation. Anonymous callers may name a
// user explicitly via the id query parameter.
func HandleUserState(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("id")
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			userID = payload.ID
		}

		if userID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"state": deps.Store.UserState(userID),
		})
	}
}
