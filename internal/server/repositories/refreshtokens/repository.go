// Package refreshtokens declares the server-side rotation ledger for refresh
// tokens. Only a one-way digest of each raw token is persisted, so a storage
// leak never yields usable tokens.
package refreshtokens

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

// Repository defines operations for recording, consuming, and sweeping
// refresh tokens.
type Repository interface {
	// Create hashes rawToken and persists the digest for userID with the
	// given expiry.
	Create(ctx context.Context, userID string, rawToken string, expiresAt time.Time) error

	// Consume hashes rawToken and atomically deletes the matching unexpired
	// record for userID. It returns common.ErrorNotFound when no live record
	// matches, which covers both replayed and never-issued tokens.
	Consume(ctx context.Context, userID string, rawToken string) error

	// DeleteExpired removes every record whose expiry has passed and
	// returns the number of rows removed.
	DeleteExpired(ctx context.Context) (int64, error)
}

// HashToken returns the base64-encoded SHA-256 digest of a raw refresh
// token. This digest, never the raw token, is what the ledger stores.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.StdEncoding.EncodeToString(sum[:])
}
