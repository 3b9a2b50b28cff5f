package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   int64  `json:"color"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     int64     `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Color:     n.Color,
		CreatedAt: n.CreatedAt,
	}
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := s.notes.Create(r.Context(), ownerID, req.Title, req.Content, req.Color)
	if err != nil {
		s.logger.Error(r.Context(), "note creation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	list, err := s.notes.ListByOwner(r.Context(), ownerID)
	if err != nil {
		s.logger.Error(r.Context(), "note listing failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := make([]noteResponse, 0, len(list))
	for _, n := range list {
		result = append(result, toNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	id := chi.URLParam(r, "id")

	if err := s.notes.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		s.logger.Error(r.Context(), "note deletion failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
