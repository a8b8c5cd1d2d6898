package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/http/response"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) Retrieve(c *gin.Context) {
	userID, err := pathID(c, "pk")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rendered, err := ph.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, rendered)
}

func (ph *ProfileHandler) Update(c *gin.Context) {
	userID, err := pathID(c, "pk")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	updated, err := ph.profileService.Update(c.Request.Context(), userID, input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (ph *ProfileHandler) ListBusiness(c *gin.Context) {
	items, err := ph.profileService.ListBusiness(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, items)
}

func (ph *ProfileHandler) ListCustomer(c *gin.Context) {
	items, err := ph.profileService.ListCustomer(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, items)
}
