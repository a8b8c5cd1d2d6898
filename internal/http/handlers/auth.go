package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/http/response"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var input services.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	payload, err := ah.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, payload)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	payload, err := ah.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, payload)
}
