package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// NewFieldErrorResponse creates an error response attributed to a single input field.
func NewFieldErrorResponse(c *gin.Context, field, errorMsg string) ErrorResponse {
	resp := NewErrorResponse(c, errorMsg)
	resp.Field = field
	return resp
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountSummary describes a minimal view of an account returned by the API.
type AccountSummary struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Active        bool   `json:"active"`
	EmailVerified bool   `json:"email_verified"`
}

func newAccountSummary(account domain.Account) AccountSummary {
	return AccountSummary{
		ID:            account.ID,
		Email:         account.Email,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Active:        account.Active,
		EmailVerified: account.EmailVerified,
	}
}

// RegisterRequest defines the account registration payload.
type RegisterRequest struct {
	Email                string `json:"email" binding:"required"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

// RegisterResponse contains registration results.
type RegisterResponse struct {
	Message string         `json:"message"`
	Account AccountSummary `json:"account"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse describes the response returned for a successful login.
type LoginResponse struct {
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// NoteCreateRequest defines the payload for creating a note.
type NoteCreateRequest struct {
	Text string `json:"note_text" binding:"required"`
	Type string `json:"note_type" binding:"required"`
}

// NoteResponse describes a single note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"note_text"`
	Type      string    `json:"note_type"`
	CreatedAt time.Time `json:"created_at"`
}

func newNoteResponse(note domain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Text:      note.Text,
		Type:      string(note.Type),
		CreatedAt: note.CreatedAt,
	}
}

// NoteListResponse wraps the account's notes.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
