package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether plaintext matches the stored hash.
// A mismatch or a malformed stored hash is a plain false, never an error,
// so callers cannot leak which of the two happened.
func ComparePassword(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
			return false, nil
		}
		var invalidPrefix bcrypt.InvalidHashPrefixError
		if errors.As(err, &invalidPrefix) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
