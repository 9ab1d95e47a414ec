package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/transport/http/middleware"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/usecase"
)

// NoteHandler exposes the authenticated note endpoints.
type NoteHandler struct {
	notes *usecase.NoteService
}

func NewNoteHandler(notes *usecase.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// Create persists a note owned by the authenticated account.
func (h *NoteHandler) Create(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req NoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid note payload"))
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), accountID, req.Text, req.Type)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, NewFieldErrorResponse(c, vErr.Field, vErr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to create note"))
		return
	}

	c.JSON(http.StatusCreated, newNoteResponse(*note))
}

// List returns the authenticated account's notes, newest first.
func (h *NoteHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	notes, err := h.notes.ListNotes(c.Request.Context(), accountID)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, NewFieldErrorResponse(c, vErr.Field, vErr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list notes"))
		return
	}

	resp := NoteListResponse{Notes: make([]NoteResponse, 0, len(notes))}
	for _, note := range notes {
		resp.Notes = append(resp.Notes, newNoteResponse(note))
	}

	c.JSON(http.StatusOK, resp)
}
