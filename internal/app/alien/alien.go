/*
Package alien models the external Alien identity and payment collaborators.

The core ledger trusts whatever verified identity and transaction reference
it is handed; these interfaces are where that trust boundary sits. The real
providers live in the Alien host app, so this package ships mock
implementations that mint plausible identities and transaction ids for
development and demonstrations.
*/
package alien

import (
	"context"
	"math/rand/v2"

	"github.com/codydotio/pulse/internal/pkg/randx"
)

// IdentityResult is the outcome of an identity verification attempt.
type IdentityResult struct {
	Success      bool   `json:"success"`
	AlienID      string `json:"alienId"`
	DisplayName  string `json:"displayName"`
	ProofOfHuman bool   `json:"proofOfHuman"`
}

// PaymentResult is the outcome of a token payment authorization.
// TransactionID is opaque to the core; it is recorded on the resonance as-is.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
}

// IdentityProvider verifies that a caller is a unique human and returns their
// stable alien identity.
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context) (IdentityResult, error)
}

// PaymentProvider authorizes a token payment to another alien identity and
// returns the transaction reference.
type PaymentProvider interface {
	SendPayment(ctx context.Context, recipientAlienID string, amount int, memo string) (PaymentResult, error)
}

// mockNames is the display-name pool the mock identity provider draws from.
var mockNames = []string{
	"Starlight", "Moonbeam", "Sunflower", "Raindrop", "Snowflake",
	"Firefly", "Breeze", "Coral", "Willow", "Clover",
}

// MockBridge is the development stand-in for both Alien providers.
// Every verification mints a fresh identity and every payment succeeds.
type MockBridge struct{}

// NewMockBridge constructs the mock identity and payment provider.
func NewMockBridge() *MockBridge {
	return &MockBridge{}
}

// VerifyIdentity mints a new mock alien identity with a random display name.
func (b *MockBridge) VerifyIdentity(ctx context.Context) (IdentityResult, error) {
	if err := ctx.Err(); err != nil {
		return IdentityResult{}, err
	}

	return IdentityResult{
		Success:      true,
		AlienID:      randx.MockAlienID(),
		DisplayName:  mockNames[rand.IntN(len(mockNames))],
		ProofOfHuman: true,
	}, nil
}

// SendPayment authorizes a mock token payment and returns a fresh
// transaction reference.
func (b *MockBridge) SendPayment(ctx context.Context, recipientAlienID string, amount int, memo string) (PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		Success:       true,
		TransactionID: randx.TransactionID(),
	}, nil
}
