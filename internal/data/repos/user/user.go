package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (*domain.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uint) ([]*domain.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uint) (*domain.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result domain.User
	if err := transaction.WithContext(ctx).
		First(&result, userID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uint) ([]*domain.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*domain.User
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result domain.User
	if err := transaction.WithContext(ctx).
		Where("username = ?", username).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
