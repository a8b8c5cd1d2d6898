package review

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

const (
	OrderingUpdatedAt     = "updated_at"
	OrderingUpdatedAtDesc = "-updated_at"
	OrderingRating        = "rating"
	OrderingRatingDesc    = "-rating"
)

type ListFilter struct {
	BusinessUserID *uint
	ReviewerID     *uint
	Ordering       string
}

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, reviewID uint) (*domain.Review, error)
	Save(ctx context.Context, tx *gorm.DB, review *domain.Review) error
	Delete(ctx context.Context, tx *gorm.DB, reviewID uint) error
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*domain.Review, error)
	Exists(ctx context.Context, tx *gorm.DB, businessUserID, reviewerID uint) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	AverageRating(ctx context.Context, tx *gorm.DB) (float64, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *domain.Review) (*domain.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (rr *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, reviewID uint) (*domain.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result domain.Review
	if err := transaction.WithContext(ctx).
		First(&result, reviewID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *reviewRepo) Save(ctx context.Context, tx *gorm.DB, review *domain.Review) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Save(review).Error
}

func (rr *reviewRepo) Delete(ctx context.Context, tx *gorm.DB, reviewID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Delete(&domain.Review{}, reviewID).Error
}

func orderingExpr(ordering string) string {
	switch ordering {
	case OrderingUpdatedAt:
		return "updated_at ASC"
	case OrderingRating:
		return "rating ASC"
	case OrderingRatingDesc:
		return "rating DESC"
	default:
		return "updated_at DESC"
	}
}

func (rr *reviewRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*domain.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	q := transaction.WithContext(ctx).Model(&domain.Review{})
	if filter.BusinessUserID != nil {
		q = q.Where("business_user_id = ?", *filter.BusinessUserID)
	}
	if filter.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *filter.ReviewerID)
	}

	var results []*domain.Review
	if err := q.Order(orderingExpr(filter.Ordering)).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) Exists(ctx context.Context, tx *gorm.DB, businessUserID, reviewerID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *reviewRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Review{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *reviewRepo) AverageRating(ctx context.Context, tx *gorm.DB) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var avg *float64
	if err := transaction.WithContext(ctx).
		Model(&domain.Review{}).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
