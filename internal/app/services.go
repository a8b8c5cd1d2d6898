package app

import (
	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/platform/logger"
	"github.com/craftora/craftora-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Profile  services.ProfileService
	Offer    services.OfferService
	Order    services.OrderService
	Review   services.ReviewService
	BaseInfo services.BaseInfoService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(
			db, log, repos.User, repos.Profile,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RoleResolver,
		),
		Profile:  services.NewProfileService(db, log, repos.User, repos.Profile),
		Offer:    services.NewOfferService(db, log, repos.Offer, repos.OfferDetail, repos.User),
		Order:    services.NewOrderService(db, log, repos.Order, repos.OfferDetail, repos.Offer, repos.User, repos.Profile),
		Review:   services.NewReviewService(db, log, repos.Review, repos.User, repos.Profile),
		BaseInfo: services.NewBaseInfoService(db, log, repos.Review, repos.Profile, repos.Offer),
	}
}
