package models

import "time"

// RefreshToken is the server-side rotation ledger entry. Only the SHA-256
// digest of the raw token is ever stored.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}
