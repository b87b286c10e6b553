/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file handles resonance: a token transfer from the acting user to a
pulse's owner. When the request carries no external transaction reference,
the payment provider authorizes one before the ledger transfer runs.
*/
package handler

import (
	"fmt"
	"net/http"

	"github.com/codydotio/pulse/internal/pkg/errs"
	"github.com/codydotio/pulse/internal/pkg/logx"
	"github.com/codydotio/pulse/internal/pkg/req"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

// ResonateInput carries a resonance request. FromUserID is only honored for
// callers without a session token.
type ResonateInput struct {
	FromUserID string `json:"fromUserId,omitempty"`
	PulseID    string `json:"pulseId"`
	Amount     int    `json:"amount"`
	TxRef      string `json:"txRef,omitempty"`
}

// HandleResonate applies a resonance and returns the new record together
// with the sender's refreshed ledger state.
func HandleResonate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ResonateInput

		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		fromUserID := identityID(r, input.FromUserID)
		if fromUserID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		pulse, ok := deps.Store.GetPulse(input.PulseID)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrPulseNotFound))
			return
		}

		txRef := input.TxRef
		if txRef == "" {
			memo := fmt.Sprintf("Resonance for pulse %s", pulse.ID)
			result, err := deps.Payments.SendPayment(r.Context(), pulse.UserID, input.Amount, memo)
			if err != nil {
				logx.Error(err, "Payment provider call failed", "pulse_id", pulse.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrPaymentFailed))
				return
			}
			if !result.Success {
				resp.RespondError(w, r, errs.NewError(errs.ErrPaymentFailed))
				return
			}

			txRef = result.TransactionID
		}

		resonance, customErr := deps.Store.AddResonance(fromUserID, input.PulseID, input.Amount, txRef)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"resonance": resonance,
			"state":     deps.Store.UserState(fromUserID),
		})
	}
}
