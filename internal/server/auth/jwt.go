// Package auth issues and verifies the signed tokens used by the
// authentication flow. Tokens are HS256 JWTs carrying the subject user id,
// a "type" claim discriminating access tokens from refresh tokens, and
// issued-at/expiry timestamps.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// TokenKind is the value of the "type" claim.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

const bearerPrefix = "Bearer "

// Claims includes the registered claims plus the token type discriminator.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// Signer signs and verifies tokens with a process-wide symmetric key.
// The key is loaded once at startup and never rotated in-process.
type Signer struct {
	secretKey []byte
	now       func() time.Time
}

func NewSigner(secretKey []byte) *Signer {
	return &Signer{secretKey: secretKey, now: time.Now}
}

// Issue returns a signed token for userID of the given kind, valid for
// the given duration. Every token carries a fresh jti: JWT timestamps have
// whole-second resolution, so without it two tokens minted for the same user
// within one second would be byte-identical. Refresh rotation relies on each
// issued token hashing to a new ledger digest.
func (s *Signer) Issue(userID string, kind TokenKind, validity time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		TokenType: string(kind),
	})

	return token.SignedString(s.secretKey)
}

// Verify parses tokenString, checks the signature, expiry, and the "type"
// claim against kind, and returns the subject user id. It fails closed:
// a bad signature, an expired or malformed token, and a wrong kind all
// yield common.ErrInvalidToken so the caller cannot tell them apart.
//
// An optional "Bearer " scheme marker is stripped before parsing so the
// value of a transport header can be passed in directly.
func (s *Signer) Verify(tokenString string, kind TokenKind) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(StripBearer(tokenString), claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.TokenType != string(kind) || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// StripBearer removes an optional "Bearer " prefix from a token string.
func StripBearer(token string) string {
	return strings.TrimPrefix(token, bearerPrefix)
}
