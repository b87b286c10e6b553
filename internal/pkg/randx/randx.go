/*
Package randx provides functions for generating random identifiers.

It generates creation-time-derived ids for pulses and resonances, Base62
alien ids for the mock identity bridge, and UUID transaction references.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// IDSuffixLength is the number of random Base62 characters appended to entity ids.
	IDSuffixLength = 6

	// AlienIDPrefix is the prefix carried by every alien identity id.
	AlienIDPrefix = "alien_"

	// AlienIDRawLength is the length of the random part of a mock alien id.
	AlienIDRawLength = 8
)

// suffix returns n random Base62 characters.
// crypto/rand.Read never fails on supported platforms, so suffix is infallible.
func suffix(n int) string {
	buf := make([]byte, n)
	rand.Read(buf)

	result := make([]byte, n)
	for i, b := range buf {
		result[i] = Base62Chars[int(b)%len(Base62Chars)]
	}

	return string(result)
}

// PulseID generates a unique, creation-time-derived pulse identifier.
func PulseID() string {
	return fmt.Sprintf("pulse_%d_%s", time.Now().UnixMilli(), suffix(IDSuffixLength))
}

// ResonanceID generates a unique, creation-time-derived resonance identifier.
func ResonanceID() string {
	return fmt.Sprintf("res_%d_%s", time.Now().UnixMilli(), suffix(IDSuffixLength))
}

// MockAlienID generates an alien identity id for the mock identity provider.
func MockAlienID() string {
	return AlienIDPrefix + suffix(AlienIDRawLength)
}

// TransactionID generates a UUID-backed transaction reference for the mock payment provider.
func TransactionID() string {
	return "tx_" + uuid.New().String()
}

// IsValidAlienID checks whether the given string looks like an alien identity id:
// the alien prefix followed by at least one Base62 character.
func IsValidAlienID(id string) bool {
	if !strings.HasPrefix(id, AlienIDPrefix) {
		return false
	}

	rawID := id[len(AlienIDPrefix):]
	if rawID == "" {
		return false
	}

	for _, char := range rawID {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
