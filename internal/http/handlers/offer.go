package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/http/response"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/services"
)

type OfferHandler struct {
	offerService services.OfferService
}

func NewOfferHandler(offerService services.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// pathID parses a numeric path parameter. Non-numeric ids resolve to
// not found, matching how the routes are addressed.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotFound("Not found.")
	}
	return uint(id), nil
}

func (oh *OfferHandler) List(c *gin.Context) {
	query := services.OfferListQuery{
		CreatorID:       c.Query("creator_id"),
		MinPrice:        c.Query("min_price"),
		MaxDeliveryTime: c.Query("max_delivery_time"),
		Search:          c.Query("search"),
		Ordering:        c.Query("ordering"),
		Page:            c.Query("page"),
		PageSize:        c.Query("page_size"),
	}
	page, err := oh.offerService.List(c.Request.Context(), query)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Paginated(c, page.Count, page.Page, page.PageSize, page.Results))
}

func (oh *OfferHandler) Create(c *gin.Context) {
	var input services.OfferCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	created, err := oh.offerService.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (oh *OfferHandler) Retrieve(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rendered, err := oh.offerService.Retrieve(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, rendered)
}

func (oh *OfferHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var input services.OfferUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondAppError(c, apperr.NonFieldValidation("Invalid request body."))
		return
	}
	updated, err := oh.offerService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (oh *OfferHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := oh.offerService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (oh *OfferHandler) RetrieveDetail(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	detail, err := oh.offerService.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, detail)
}
