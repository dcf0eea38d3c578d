// Package keyhash derives the registry-wide identity of a keyword.
package keyhash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Domain is the binding prefix mixed into every keyword digest so hashes from
// this registry never collide with digests computed for other purposes.
const Domain = "addy/keyword-slot/v1"

// Size is the length of a digest in hex characters.
const Size = sha256.Size * 2

// Func hashes keyword text under a domain binding constant. Implementations
// must be deterministic and collision resistant and return a fixed-length
// lower-case hex digest.
type Func func(domain, keyword string) string

// SHA256 is the default Func. The keyword is trimmed before hashing so
// surrounding whitespace never produces a distinct slot.
func SHA256(domain, keyword string) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(keyword)))
	return hex.EncodeToString(h.Sum(nil))
}
