package services

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	reviewrepo "github.com/craftora/craftora-backend/internal/data/repos/review"
	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/platform/logger"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

type ReviewListQuery struct {
	BusinessUserID string
	ReviewerID     string
	Ordering       string
}

type ReviewCreateInput struct {
	BusinessUser uint   `json:"business_user"`
	Rating       int    `json:"rating"`
	Description  string `json:"description"`
}

type ReviewUpdateInput struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

type ReviewService interface {
	List(ctx context.Context, query ReviewListQuery) ([]*domain.Review, error)
	Create(ctx context.Context, input ReviewCreateInput) (*domain.Review, error)
	Update(ctx context.Context, reviewID uint, input ReviewUpdateInput) (*domain.Review, error)
	Delete(ctx context.Context, reviewID uint) error
}

type reviewService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  reviewrepo.ReviewRepo
	userRepo    userrepo.UserRepo
	profileRepo userrepo.ProfileRepo
}

func NewReviewService(
	db *gorm.DB,
	log *logger.Logger,
	reviewRepo reviewrepo.ReviewRepo,
	userRepo userrepo.UserRepo,
	profileRepo userrepo.ProfileRepo,
) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{
		db:          db,
		log:         serviceLog,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *reviewService) List(ctx context.Context, query ReviewListQuery) ([]*domain.Review, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceReview, permissions.VerbList, nil); err != nil {
		return nil, err
	}

	filter := reviewrepo.ListFilter{}
	if query.BusinessUserID != "" {
		id, err := strconv.ParseUint(query.BusinessUserID, 10, 64)
		if err != nil {
			return nil, apperr.Validation("business_user_id", "business_user_id has to be a number")
		}
		v := uint(id)
		filter.BusinessUserID = &v
	}
	if query.ReviewerID != "" {
		id, err := strconv.ParseUint(query.ReviewerID, 10, 64)
		if err != nil {
			return nil, apperr.Validation("reviewer_id", "reviewer_id has to be a number")
		}
		v := uint(id)
		filter.ReviewerID = &v
	}
	switch query.Ordering {
	case reviewrepo.OrderingUpdatedAt, reviewrepo.OrderingUpdatedAtDesc,
		reviewrepo.OrderingRating, reviewrepo.OrderingRatingDesc:
		filter.Ordering = query.Ordering
	}

	reviews, err := s.reviewRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list reviews: %w", err))
	}
	return reviews, nil
}

func (s *reviewService) Create(ctx context.Context, input ReviewCreateInput) (*domain.Review, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceReview, permissions.VerbCreate, nil); err != nil {
		return nil, err
	}

	if !validRating(input.Rating) {
		return nil, apperr.Validation("rating", "Rating must be between 1 and 5.")
	}

	if _, err := s.userRepo.GetByID(ctx, nil, input.BusinessUser); err != nil {
		if apperr.From(err).Kind == apperr.KindNotFound {
			return nil, apperr.Validation("business_user", "The user must be a business user.")
		}
		return nil, apperr.Internal(fmt.Errorf("load business user: %w", err))
	}
	profile, err := s.profileRepo.GetByUserID(ctx, nil, input.BusinessUser)
	if err != nil || profile.Type != domain.ProfileTypeBusiness {
		return nil, apperr.Validation("business_user", "The user must be a business user.")
	}

	var created *domain.Review
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.reviewRepo.Exists(ctx, tx, input.BusinessUser, rd.UserID)
		if err != nil {
			return fmt.Errorf("check existing review: %w", err)
		}
		if exists {
			return apperr.NonFieldValidation("You have already reviewed this business user.")
		}
		created, err = s.reviewRepo.Create(ctx, tx, &domain.Review{
			BusinessUserID: input.BusinessUser,
			ReviewerID:     rd.UserID,
			Rating:         input.Rating,
			Description:    input.Description,
		})
		return err
	}); err != nil {
		return nil, apperr.From(err)
	}
	return created, nil
}

func (s *reviewService) Update(ctx context.Context, reviewID uint, input ReviewUpdateInput) (*domain.Review, error) {
	rd := requestdata.Current(ctx)

	found, err := s.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if err := permissions.Check(rd, permissions.ResourceReview, permissions.VerbUpdate, found); err != nil {
		return nil, err
	}

	if input.Rating != nil && !validRating(*input.Rating) {
		return nil, apperr.Validation("rating", "Rating must be between 1 and 5.")
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Rating != nil {
			found.Rating = *input.Rating
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		return s.reviewRepo.Save(ctx, tx, found)
	}); err != nil {
		return nil, apperr.Internal(fmt.Errorf("update review: %w", err))
	}
	return found, nil
}

func (s *reviewService) Delete(ctx context.Context, reviewID uint) error {
	rd := requestdata.Current(ctx)

	found, err := s.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return apperr.From(err)
	}
	if err := permissions.Check(rd, permissions.ResourceReview, permissions.VerbDelete, found); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, nil, reviewID); err != nil {
		return apperr.Internal(fmt.Errorf("delete review: %w", err))
	}
	return nil
}
