// Package refreshtokens provides a PostgreSQL-backed repository for the
// refresh-token rotation ledger.
package refreshtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a ledger record holding the digest of rawToken.
func (r *PostgresRepository) Create(ctx context.Context, userID string, rawToken string, expiresAt time.Time) error {
	token := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: HashToken(rawToken),
		Expires:   expiresAt,
	}

	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, token.ID, token.UserID, token.TokenHash, token.Expires); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Consume deletes the unexpired record matching (userID, digest) in a single
// conditional statement. The expiry predicate runs in the same statement as
// the delete, so two concurrent calls with the same raw token cannot both
// observe the row: at most one delete reports an affected row.
func (r *PostgresRepository) Consume(ctx context.Context, userID string, rawToken string) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE user_id = $1 AND token_hash = $2 AND expires_at > $3
	`
	res, err := r.db.ExecContext(ctx, query, userID, HashToken(rawToken), time.Now())
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteExpired purges records whose expiry has passed. Expired records are
// already rejected by Consume; this just keeps the table small.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at <= $1
	`
	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return res.RowsAffected()
}
