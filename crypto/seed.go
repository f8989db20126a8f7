package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateSeed returns a fresh random RNG seed and its SHA-256 hash. The hash
// is safe to log; the seed reproduces the session's draws.
func GenerateSeed() (seed string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err = rand.Read(bytes); err != nil {
		return "", "", err
	}

	seed = hex.EncodeToString(bytes)
	hash = HashSeed(seed)
	return seed, hash, nil
}

func HashSeed(seed string) string {
	h := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(h[:])
}

func VerifySeed(seed, hash string) bool {
	return HashSeed(seed) == hash
}
