/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Ledger Business Logic Errors
const (
	// ErrNotVerified indicates that the acting user has never been registered as a verified human.
	ErrNotVerified = 2001

	// ErrInvalidMessage indicates that the pulse message is empty after trimming or exceeds the length limit.
	ErrInvalidMessage = 2002

	// ErrPulseNotFound indicates that the targeted pulse id does not exist in the ledger.
	ErrPulseNotFound = 2101

	// ErrSelfResonance indicates an attempt to resonate with one's own pulse.
	ErrSelfResonance = 2102

	// ErrInvalidAmount indicates a resonance amount outside the allowed 1-3 token range.
	ErrInvalidAmount = 2103

	// ErrInsufficientBalance indicates that the sender does not hold enough tokens for the transfer.
	ErrInsufficientBalance = 2104
)

// 3xxx: Identity and External Collaborator Errors
const (
	// ErrUnauthorized indicates that the request carries no usable identity.
	ErrUnauthorized = 3001

	// ErrVerificationFailed indicates that the external identity provider did not confirm the caller.
	ErrVerificationFailed = 3002

	// ErrPaymentFailed indicates that the external payment provider rejected the token authorization.
	ErrPaymentFailed = 3003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
