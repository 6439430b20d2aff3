package command

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// apiKeyPrefix marks every raw secret this service issues, so a key
// leaked into logs or diffs is recognizable at a glance.
const apiKeyPrefix = "gm_"

// generateAPIKeySecret creates a random API key secret, its sha256 hash
// for at-rest storage, and a short display prefix. The hash is what
// gets looked up on every authenticated request; the raw secret is
// returned to the caller exactly once and never stored.
func generateAPIKeySecret() (raw, hashedKey, displayPrefix string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", "", fmt.Errorf("reading random bytes: %w", err)
	}

	raw = fmt.Sprintf("%s%x", apiKeyPrefix, b)

	h := sha256.Sum256([]byte(raw))
	hashedKey = hex.EncodeToString(h[:])
	displayPrefix = raw[:10]

	return raw, hashedKey, displayPrefix, nil
}

// hashAPIKeySecret hashes an incoming raw secret the same way, for
// lookup against stored hashes during authentication.
func hashAPIKeySecret(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
