// Package identity derives stable, non-reversible keys from raw client
// addresses so that raw IPs are never persisted.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of a raw address. It is
// deterministic and has no error path: empty or malformed input still hashes.
func Hash(rawAddress string) string {
	sum := sha256.Sum256([]byte(rawAddress))
	return hex.EncodeToString(sum[:])
}
