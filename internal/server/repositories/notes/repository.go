// Package notes declares the persistence contract for personal notes.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository defines CRUD operations for notes, always scoped to an owner.
type Repository interface {
	// Create persists a new note and returns it with its stored timestamps.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)

	// ListByOwner returns every note belonging to ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)

	// DeleteByIDAndOwner removes the note only when it belongs to ownerID.
	// It returns common.ErrorNotFound when no such note exists, including
	// the case of a note owned by someone else.
	DeleteByIDAndOwner(ctx context.Context, id string, ownerID string) error
}
