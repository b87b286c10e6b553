/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Ledger Business Logic Errors
	ErrNotVerified:         {Code: ErrNotVerified, Message: "Not verified.", Status: http.StatusBadRequest},
	ErrInvalidMessage:      {Code: ErrInvalidMessage, Message: "Message must be 1-120 characters.", Status: http.StatusBadRequest},
	ErrPulseNotFound:       {Code: ErrPulseNotFound, Message: "Pulse not found.", Status: http.StatusBadRequest},
	ErrSelfResonance:       {Code: ErrSelfResonance, Message: "Can't resonate with your own pulse.", Status: http.StatusBadRequest},
	ErrInvalidAmount:       {Code: ErrInvalidAmount, Message: "Resonance amount must be 1-3.", Status: http.StatusBadRequest},
	ErrInsufficientBalance: {Code: ErrInsufficientBalance, Message: "Insufficient balance.", Status: http.StatusBadRequest},

	// 3xxx: Identity and External Collaborator Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please verify your identity to continue.", Status: http.StatusUnauthorized},
	ErrVerificationFailed: {Code: ErrVerificationFailed, Message: "Identity verification failed. Please try again.", Status: http.StatusBadRequest},
	ErrPaymentFailed:      {Code: ErrPaymentFailed, Message: "Token payment failed. Please try again.", Status: http.StatusBadRequest},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
