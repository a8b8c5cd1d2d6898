package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/craftora/craftora-backend/internal/http"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,

		AuthHandler:     handlers.Auth,
		ProfileHandler:  handlers.Profile,
		OfferHandler:    handlers.Offer,
		OrderHandler:    handlers.Order,
		ReviewHandler:   handlers.Review,
		BaseInfoHandler: handlers.BaseInfo,
		HealthHandler:   handlers.Health,
	})
}
