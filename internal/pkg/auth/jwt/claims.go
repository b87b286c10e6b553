package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims for a verified Pulse session.
// A session token is issued after identity verification and lets later
// requests act as the verified human without resending credentials.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer), used for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the verified alien id the token holder acts as.
	ID string `json:"id"`

	// Name is the display name captured at verification time.
	Name string `json:"name"`
}
