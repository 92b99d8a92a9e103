package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewSessionHash derives an opaque session hash from a fresh random UUID and
// a high-resolution timestamp, rendered as lowercase hex. The input is never
// stored, so the hash cannot be recomputed by a client.
func NewSessionHash() string {
	sum := sha256.Sum256([]byte(uuid.NewString() + strconv.FormatInt(time.Now().UnixNano(), 10)))
	return hex.EncodeToString(sum[:])
}
