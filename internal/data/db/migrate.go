package db

import (
	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity
		&domain.User{},
		&domain.UserProfile{},

		// Marketplace inventory
		&domain.Offer{},
		&domain.OfferDetail{},

		// Transactions + feedback
		&domain.Order{},
		&domain.Review{},
	)
}
