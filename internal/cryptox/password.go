// Package cryptox provides password hashing for the authentication flow.
// Hashes are salted bcrypt strings; the plaintext is never stored or logged.
package cryptox

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword returns a salted bcrypt hash of the plaintext password.
// The salt is embedded in the encoded hash, so two hashes of the same
// password differ.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// A malformed hash simply does not match; no error is surfaced.
func CheckPassword(password string, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
