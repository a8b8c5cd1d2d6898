package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
)

func FeaturesJSON(tb testing.TB, features ...string) datatypes.JSON {
	tb.Helper()
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		tb.Fatalf("marshal features: %v", err)
	}
	return datatypes.JSON(raw)
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, profileType string) *domain.User {
	tb.Helper()
	u := &domain.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	if profileType != "" {
		p := &domain.UserProfile{UserID: u.ID, Type: profileType}
		if err := tx.WithContext(ctx).Create(p).Error; err != nil {
			tb.Fatalf("seed profile: %v", err)
		}
		u.Profile = p
	}
	return u
}

func SeedOffer(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, title string) *domain.Offer {
	tb.Helper()
	o := &domain.Offer{
		UserID:      userID,
		Title:       title,
		Description: "desc",
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed offer: %v", err)
	}
	return o
}

func SeedOfferDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, offerID uint, offerType string, price, deliveryDays int) *domain.OfferDetail {
	tb.Helper()
	d := &domain.OfferDetail{
		OfferID:            offerID,
		Title:              offerType + " tier",
		Revisions:          2,
		DeliveryTimeInDays: deliveryDays,
		Price:              price,
		Features:           FeaturesJSON(tb, "Feature A"),
		OfferType:          offerType,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed offer detail: %v", err)
	}
	return d
}

// SeedTieredOffer creates an offer with basic/standard/premium details at
// the given prices and delivery times 3/5/7.
func SeedTieredOffer(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, title string, prices [3]int) *domain.Offer {
	tb.Helper()
	o := SeedOffer(tb, ctx, tx, userID, title)
	SeedOfferDetail(tb, ctx, tx, o.ID, domain.OfferTypeBasic, prices[0], 3)
	SeedOfferDetail(tb, ctx, tx, o.ID, domain.OfferTypeStandard, prices[1], 5)
	SeedOfferDetail(tb, ctx, tx, o.ID, domain.OfferTypePremium, prices[2], 7)
	return o
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID, businessID uint, detail *domain.OfferDetail, status string) *domain.Order {
	tb.Helper()
	ord := &domain.Order{
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		OfferDetailID:      detail.ID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
		Status:             status,
	}
	if err := tx.WithContext(ctx).Create(ord).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return ord
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, businessID, reviewerID uint, rating int) *domain.Review {
	tb.Helper()
	r := &domain.Review{
		BusinessUserID: businessID,
		ReviewerID:     reviewerID,
		Rating:         rating,
		Description:    "solid work",
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}
