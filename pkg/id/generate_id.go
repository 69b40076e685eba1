package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewUUID returns a random (v4) UUID in canonical form.
func NewUUID() string { return uuid.NewString() }

// NewLoanNumber returns prefix + unix millis + "-" + 8 random hex chars.
// The suffix keeps numbers distinct when two loans are built in the same millisecond.
func NewLoanNumber(prefix string, now time.Time) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(b)
}

// NewReference returns prefix + 8 uppercase hex chars, e.g. "REF-1A2B3C4D".
func NewReference(prefix string) string {
	return prefix + strings.ToUpper(NewID32()[:8])
}
