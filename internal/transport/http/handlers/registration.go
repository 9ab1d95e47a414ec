package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/usecase"
)

// RegistrationHandler exposes endpoints for account registration and activation.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
	activation   *usecase.ActivationService
}

func NewRegistrationHandler(registration *usecase.RegistrationService, activation *usecase.ActivationService) *RegistrationHandler {
	return &RegistrationHandler{
		registration: registration,
		activation:   activation,
	}
}

// Register handles account sign-up. A new account is created deactivated and
// unverified; the activation email carries the link that flips both flags.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	input := usecase.RegistrationInput{
		Email:                req.Email,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	}

	account, err := h.registration.Register(c.Request.Context(), input)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, NewFieldErrorResponse(c, vErr.Field, vErr.Message))
		} else {
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to register account"))
		}
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "check your email to activate your account",
		Account: newAccountSummary(*account),
	})
}

// Activate consumes an activation link. Every rejection renders the same
// message regardless of which check failed.
func (h *RegistrationHandler) Activate(c *gin.Context) {
	encodedID := c.Param("uid")
	token := c.Param("token")

	account, err := h.activation.Activate(c.Request.Context(), encodedID, token)
	if err != nil {
		if errors.Is(err, usecase.ErrActivationInvalid) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "activation link is invalid"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to activate account"))
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Message: "account activated, you can now log in",
		Account: newAccountSummary(*account),
	})
}
