package app

import (
	httpH "github.com/craftora/craftora-backend/internal/http/handlers"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type Handlers struct {
	Auth     *httpH.AuthHandler
	Profile  *httpH.ProfileHandler
	Offer    *httpH.OfferHandler
	Order    *httpH.OrderHandler
	Review   *httpH.ReviewHandler
	BaseInfo *httpH.BaseInfoHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     httpH.NewAuthHandler(services.Auth),
		Profile:  httpH.NewProfileHandler(services.Profile),
		Offer:    httpH.NewOfferHandler(services.Offer),
		Order:    httpH.NewOrderHandler(services.Order),
		Review:   httpH.NewReviewHandler(services.Review),
		BaseInfo: httpH.NewBaseInfoHandler(services.BaseInfo),
		Health:   httpH.NewHealthHandler(),
	}
}
