package intake

import (
	"crypto/rand"
	"fmt"
)

const (
	refAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refSuffixLen = 6
)

// NewReference produces a booking reference: the configured edition prefix
// followed by a 6-character uppercase alphanumeric suffix. 36^6 combinations
// keeps the birthday-collision probability negligible at registration
// volumes; actual uniqueness is enforced by the store's unique index, with
// the caller retrying generation on conflict.
func NewReference(prefix string) (string, error) {
	buf := make([]byte, refSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate booking reference: %w", err)
	}
	suffix := make([]byte, refSuffixLen)
	for i, b := range buf {
		suffix[i] = refAlphabet[int(b)%len(refAlphabet)]
	}
	return prefix + string(suffix), nil
}
