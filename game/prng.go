package game

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// NewSeededRNG derives a deterministic generator from an arbitrary seed string,
// so a session or a simulation can be replayed from its logged seed.
func NewSeededRNG(seed string) *rand.Rand {
	hash := sha256.Sum256([]byte(seed))
	seedInt := int64(binary.BigEndian.Uint64(hash[:8]))
	return rand.New(rand.NewSource(seedInt))
}
