package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// DerivedPassword returns the day password for a date in YYYYMMDD form: the
// first 8 hex characters of SHA-256(date + secret). The same derivation ships
// with the dashboard frontend, so this gates presentation only and provides
// no confidentiality for the underlying data.
func DerivedPassword(date, secret string) string {
	sum := sha256.Sum256([]byte(date + secret))
	return hex.EncodeToString(sum[:])[:8]
}
