package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

// NoteService provides note CRUD scoped to an owner. The owner id always
// arrives as an explicit parameter, extracted from a validated access token
// at the transport boundary.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create persists a new note for ownerID and returns it with its stored id.
func (s *NoteService) Create(ctx context.Context, ownerID string, title string, content string, color int64) (*models.Note, error) {
	note := &models.Note{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Color:   color,
	}

	repo := s.repomanager.Notes(s.db)
	n, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// ListByOwner returns every note belonging to ownerID.
func (s *NoteService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

// Delete removes the note with the given id when ownerID owns it; a missing
// or foreign note yields common.ErrorNotFound.
func (s *NoteService) Delete(ctx context.Context, id string, ownerID string) error {
	repo := s.repomanager.Notes(s.db)
	if err := repo.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting note: %w", err)
	}
	return nil
}
