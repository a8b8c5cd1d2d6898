package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/http/response"
	"github.com/craftora/craftora-backend/internal/services"
)

type BaseInfoHandler struct {
	baseInfoService services.BaseInfoService
}

func NewBaseInfoHandler(baseInfoService services.BaseInfoService) *BaseInfoHandler {
	return &BaseInfoHandler{baseInfoService: baseInfoService}
}

func (bh *BaseInfoHandler) Stats(c *gin.Context) {
	info, err := bh.baseInfoService.Stats(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, info)
}
