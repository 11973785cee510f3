package credential

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 4096
	keyLength  = 32
)

// Hasher derives a one-way hash from a password. The derivation is keyed by a
// service-wide secret and is deterministic: issuing a token compares the hash
// of the presented password against the stored hash byte for byte.
type Hasher struct {
	secret []byte
}

// NewHasher builds a hasher keyed by secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash returns the hex-encoded PBKDF2-SHA256 derivation of password.
func (h *Hasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.secret, iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}
