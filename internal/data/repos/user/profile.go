package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) (*domain.UserProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*domain.UserProfile, error)
	Save(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) error
	ListByType(ctx context.Context, tx *gorm.DB, profileType string) ([]*domain.UserProfile, error)
	CountByType(ctx context.Context, tx *gorm.DB, profileType string) (int64, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) (*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (pr *profileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result domain.UserProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *profileRepo) Save(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).Save(profile).Error
}

func (pr *profileRepo) ListByType(ctx context.Context, tx *gorm.DB, profileType string) ([]*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*domain.UserProfile
	if err := transaction.WithContext(ctx).
		Where("type = ?", profileType).
		Order("user_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *profileRepo) CountByType(ctx context.Context, tx *gorm.DB, profileType string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("type = ?", profileType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
