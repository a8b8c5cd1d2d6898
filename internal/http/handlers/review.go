package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/http/response"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (rh *ReviewHandler) List(c *gin.Context) {
	query := services.ReviewListQuery{
		BusinessUserID: c.Query("business_user_id"),
		ReviewerID:     c.Query("reviewer_id"),
		Ordering:       c.Query("ordering"),
	}
	reviews, err := rh.reviewService.List(c.Request.Context(), query)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, reviews)
}

func (rh *ReviewHandler) Create(c *gin.Context) {
	var input services.ReviewCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	created, err := rh.reviewService.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (rh *ReviewHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var input services.ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	updated, err := rh.reviewService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (rh *ReviewHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := rh.reviewService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
