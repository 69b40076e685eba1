package id

import (
	"encoding/hex"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	reHex32      = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reLoanNumber = regexp.MustCompile(`^REF-1757152800000-[a-f0-9]{8}$`)
	reReference  = regexp.MustCompile(`^TX-[A-F0-9]{8}$`)
)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewUUID_Parses(t *testing.T) {
	got := NewUUID()
	u, err := uuid.Parse(got)
	if err != nil {
		t.Fatalf("uuid.Parse(%q): %v", got, err)
	}
	if u.Version() != 4 {
		t.Fatalf("version = %d, want 4", u.Version())
	}
}

func TestNewLoanNumber_PrefixMillisAndSuffix(t *testing.T) {
	now := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	got := NewLoanNumber("REF-", now)
	if !reLoanNumber.MatchString(got) {
		t.Fatalf("unexpected loan number %q", got)
	}
}

// Same clock reading must still yield distinct numbers.
func TestNewLoanNumber_SameMillisecondDistinct(t *testing.T) {
	now := time.Now()
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		num := NewLoanNumber("LOAN-", now)
		if _, ok := seen[num]; ok {
			t.Fatalf("duplicate loan number after %d iterations: %q", i, num)
		}
		seen[num] = struct{}{}
	}
}

func TestNewReference_Format(t *testing.T) {
	got := NewReference("TX-")
	if !reReference.MatchString(got) {
		t.Fatalf("unexpected reference %q", got)
	}
	if strings.ToUpper(got) != got {
		t.Fatalf("reference not uppercase: %q", got)
	}
}
