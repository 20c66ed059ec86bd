// Package hash provides shared hashing utilities.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256Hex returns the full SHA256 hash of the input as a hex string.
func SHA256Hex(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

// Equal compares two hex-encoded hashes in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// IDLength is the number of hex characters used for truncated hash IDs.
const IDLength = 16

// TruncatedSHA256 returns a truncated SHA256 hash of the input string.
// The result is a 16-character hex string.
func TruncatedSHA256(data string) string {
	return SHA256Hex(data)[:IDLength]
}
