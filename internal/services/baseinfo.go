package services

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	offerrepo "github.com/craftora/craftora-backend/internal/data/repos/offer"
	reviewrepo "github.com/craftora/craftora-backend/internal/data/repos/review"
	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

// BaseInfo is the public marketplace statistics payload.
type BaseInfo struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

type BaseInfoService interface {
	Stats(ctx context.Context) (*BaseInfo, error)
}

type baseInfoService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  reviewrepo.ReviewRepo
	profileRepo userrepo.ProfileRepo
	offerRepo   offerrepo.OfferRepo
}

func NewBaseInfoService(
	db *gorm.DB,
	log *logger.Logger,
	reviewRepo reviewrepo.ReviewRepo,
	profileRepo userrepo.ProfileRepo,
	offerRepo offerrepo.OfferRepo,
) BaseInfoService {
	serviceLog := log.With("service", "BaseInfoService")
	return &baseInfoService{
		db:          db,
		log:         serviceLog,
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		offerRepo:   offerRepo,
	}
}

func (s *baseInfoService) Stats(ctx context.Context) (*BaseInfo, error) {
	reviewCount, err := s.reviewRepo.Count(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("count reviews: %w", err))
	}
	avg, err := s.reviewRepo.AverageRating(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("average rating: %w", err))
	}
	businessCount, err := s.profileRepo.CountByType(ctx, nil, domain.ProfileTypeBusiness)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("count business profiles: %w", err))
	}
	offerCount, err := s.offerRepo.Count(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("count offers: %w", err))
	}

	return &BaseInfo{
		ReviewCount:          reviewCount,
		AverageRating:        math.Round(avg*10) / 10,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}
