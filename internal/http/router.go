package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/craftora/craftora-backend/internal/http/handlers"
	httpMW "github.com/craftora/craftora-backend/internal/http/middleware"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler     *httpH.AuthHandler
	ProfileHandler  *httpH.ProfileHandler
	OfferHandler    *httpH.OfferHandler
	OrderHandler    *httpH.OrderHandler
	ReviewHandler   *httpH.ReviewHandler
	BaseInfoHandler *httpH.BaseInfoHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		// Attaches the caller identity when a token is present; the
		// services decide per operation whether anonymous is enough.
		api.Use(cfg.AuthMiddleware.Identify())
	}

	if cfg.AuthHandler != nil {
		api.POST("/registration/", cfg.AuthHandler.Register)
		api.POST("/login/", cfg.AuthHandler.Login)
	}

	if cfg.ProfileHandler != nil {
		api.GET("/profile/:pk/", cfg.ProfileHandler.Retrieve)
		api.PATCH("/profile/:pk/", cfg.ProfileHandler.Update)
		api.GET("/profiles/business/", cfg.ProfileHandler.ListBusiness)
		api.GET("/profiles/customer/", cfg.ProfileHandler.ListCustomer)
	}

	if cfg.OfferHandler != nil {
		api.GET("/offers/", cfg.OfferHandler.List)
		api.POST("/offers/", cfg.OfferHandler.Create)
		api.GET("/offers/:id/", cfg.OfferHandler.Retrieve)
		api.PUT("/offers/:id/", cfg.OfferHandler.Update)
		api.PATCH("/offers/:id/", cfg.OfferHandler.Update)
		api.DELETE("/offers/:id/", cfg.OfferHandler.Delete)
		api.GET("/offerdetails/:id/", cfg.OfferHandler.RetrieveDetail)
	}

	if cfg.OrderHandler != nil {
		api.GET("/orders/", cfg.OrderHandler.List)
		api.POST("/orders/", cfg.OrderHandler.Create)
		api.GET("/orders/:id/", cfg.OrderHandler.Retrieve)
		api.PATCH("/orders/:id/", cfg.OrderHandler.Update)
		api.DELETE("/orders/:id/", cfg.OrderHandler.Delete)
		api.GET("/order-count/:business_user_id/", cfg.OrderHandler.CountInProgress)
		api.GET("/completed-order-count/:business_user_id/", cfg.OrderHandler.CountCompleted)
	}

	if cfg.ReviewHandler != nil {
		api.GET("/reviews/", cfg.ReviewHandler.List)
		api.POST("/reviews/", cfg.ReviewHandler.Create)
		api.PATCH("/reviews/:id/", cfg.ReviewHandler.Update)
		api.DELETE("/reviews/:id/", cfg.ReviewHandler.Delete)
	}

	if cfg.BaseInfoHandler != nil {
		api.GET("/base-info/", cfg.BaseInfoHandler.Stats)
	}

	return r
}
