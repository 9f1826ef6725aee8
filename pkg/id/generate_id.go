// Package id generates and checks the public ids of loans, transactions,
// notifications and decisions.
package id

import (
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

// Len is the length of a public id.
const Len = 32

var reID = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a random v4 UUID as 32 lowercase hex characters.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid reports whether s has the shape NewID32 produces.
func Valid(s string) bool { return reID.MatchString(s) }
