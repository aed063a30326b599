package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// OwnerPrefix derives the storage path segment for an owner id. The id is
// hashed so object keys do not expose internal user ids.
func OwnerPrefix(owner string) string {
	sum := sha256.Sum256([]byte("owner:" + owner))
	return hex.EncodeToString(sum[:16])
}
