/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file handles identity verification and registration. Verified identities
come either from the request itself (the client already talked to the Alien
bridge) or from the configured identity provider when the request carries no
credentials.
*/
package handler

import (
	"net/http"

	"github.com/codydotio/pulse/internal/pkg/auth/jwt"
	"github.com/codydotio/pulse/internal/pkg/errs"
	"github.com/codydotio/pulse/internal/pkg/logx"
	"github.com/codydotio/pulse/internal/pkg/req"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

// VerifyInput carries the identity fields of a verification request. Both
// fields may be empty, in which case the identity provider supplies them.
type VerifyInput struct {
	AlienID     string `json:"alienId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// HandleVerify registers the caller as a verified human and returns the user
// record, the caller's ledger state, and a signed session token.
// Registration is idempotent, so re-verifying an existing identity simply
// refreshes the session token.
func HandleVerify(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input VerifyInput

		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		alienID := input.AlienID
		displayName := input.DisplayName

		if alienID == "" || displayName == "" {
			result, err := deps.Identity.VerifyIdentity(r.Context())
			if err != nil {
				logx.Error(err, "Identity provider call failed")
				resp.RespondError(w, r, errs.NewError(errs.ErrVerificationFailed))
				return
			}
			if !result.Success || !result.ProofOfHuman {
				resp.RespondError(w, r, errs.NewError(errs.ErrVerificationFailed))
				return
			}

			alienID = result.AlienID
			displayName = result.DisplayName
		}

		user := deps.Store.RegisterUser(alienID, displayName)
		state := deps.Store.UserState(user.ID)

		payload := &jwt.Payload{
			ID:   user.ID,
			Name: user.DisplayName,
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "Failed to generate session token", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user":  user,
			"state": state,
			"token": tokenString,
		})
	}
}
