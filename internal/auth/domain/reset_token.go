package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL is the window within which a password reset token is usable.
const ResetTokenTTL = 10 * time.Minute

type ResetToken struct {
	// Plaintext is handed to the user exactly once, via email. It is never
	// persisted.
	Plaintext string
	Hash      string
	ExpiresAt time.Time
}

// NewResetToken issues a fresh single-use reset token: 32 bytes of entropy,
// stored only as a sha256 digest. The token's own entropy makes a fast hash
// sufficient for the stored form.
func NewResetToken() (ResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return ResetToken{}, err
	}

	plaintext := hex.EncodeToString(raw)
	return ResetToken{
		Plaintext: plaintext,
		Hash:      HashResetToken(plaintext),
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}, nil
}

// HashResetToken recomputes the stored form of a presented plaintext token.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
