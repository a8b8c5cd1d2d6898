package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/http/response"
	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/requestdata"
	"github.com/craftora/craftora-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (oh *OrderHandler) List(c *gin.Context) {
	orders, err := oh.orderService.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, orders)
}

func (oh *OrderHandler) Create(c *gin.Context) {
	var input services.OrderCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	created, err := oh.orderService.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

// Retrieve is not part of the order surface. The permission table answers
// with method-not-allowed regardless of who asks.
func (oh *OrderHandler) Retrieve(c *gin.Context) {
	rd := requestdata.Current(c.Request.Context())
	err := permissions.Check(rd, permissions.ResourceOrder, permissions.VerbRetrieve, nil)
	response.RespondAppError(c, err)
}

func (oh *OrderHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var input services.OrderUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	updated, err := oh.orderService.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (oh *OrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := oh.orderService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (oh *OrderHandler) CountInProgress(c *gin.Context) {
	businessUserID, err := pathID(c, "business_user_id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	count, err := oh.orderService.CountForBusiness(c.Request.Context(), businessUserID, domain.OrderStatusInProgress)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order_count": count})
}

func (oh *OrderHandler) CountCompleted(c *gin.Context) {
	businessUserID, err := pathID(c, "business_user_id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	count, err := oh.orderService.CountForBusiness(c.Request.Context(), businessUserID, domain.OrderStatusCompleted)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"completed_order_count": count})
}
