package token

import (
	"crypto/rand"
	"fmt"
)

// IDLength is the fixed length of token identifiers.
const IDLength = 20

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewID returns a cryptographically random identifier of IDLength characters
// drawn uniformly from idAlphabet. Collisions are treated as negligible; no
// duplicate check is performed.
func NewID() (string, error) {
	// Largest multiple of len(idAlphabet) below 256, for rejection sampling.
	limit := byte(256 / len(idAlphabet) * len(idAlphabet))

	id := make([]byte, 0, IDLength)
	buf := make([]byte, IDLength)
	for len(id) < IDLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate token id: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			id = append(id, idAlphabet[int(b)%len(idAlphabet)])
			if len(id) == IDLength {
				break
			}
		}
	}
	return string(id), nil
}
