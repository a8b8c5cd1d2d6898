package app

import (
	"gorm.io/gorm"

	offerrepo "github.com/craftora/craftora-backend/internal/data/repos/offer"
	orderrepo "github.com/craftora/craftora-backend/internal/data/repos/order"
	reviewrepo "github.com/craftora/craftora-backend/internal/data/repos/review"
	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type Repos struct {
	User        userrepo.UserRepo
	Profile     userrepo.ProfileRepo
	Offer       offerrepo.OfferRepo
	OfferDetail offerrepo.OfferDetailRepo
	Order       orderrepo.OrderRepo
	Review      reviewrepo.ReviewRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        userrepo.NewUserRepo(db, log),
		Profile:     userrepo.NewProfileRepo(db, log),
		Offer:       offerrepo.NewOfferRepo(db, log),
		OfferDetail: offerrepo.NewOfferDetailRepo(db, log),
		Order:       orderrepo.NewOrderRepo(db, log),
		Review:      reviewrepo.NewReviewRepo(db, log),
	}
}
