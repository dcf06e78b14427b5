package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Used for actor and request identifiers carried in headers.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewUUID returns a canonical lowercase uuid4 string. Loan, payment and
// package records use these as their public identifiers.
func NewUUID() string {
	return uuid.NewString()
}
