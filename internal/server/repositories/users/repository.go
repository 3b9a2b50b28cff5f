// Package users declares the persistence contract for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository defines operations for creating and looking up users.
type Repository interface {
	// Create persists a new user. A duplicate email yields
	// common.ErrDuplicateCredential.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound
	// when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
