package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/usecase"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *usecase.AuthService
}

func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login checks credentials and returns a bearer token pair. Rejections are
// deliberately specific about which precondition failed: unknown accounts,
// bad passwords, unverified email, and deactivated accounts each map to
// their own status.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, NewFieldErrorResponse(c, vErr.Field, vErr.Message))
			return
		}

		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account does not exist"},
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
			{Err: usecase.ErrEmailNotVerified, Status: http.StatusForbidden, Message: "email is not verified"},
			{Err: usecase.ErrAccountDeactivated, Status: http.StatusForbidden, Message: "account is deactivated"},
		}, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Email:        result.Email,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		TokenType:    "Bearer",
	})
}
