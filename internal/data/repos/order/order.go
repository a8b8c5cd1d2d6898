package order

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, tx *gorm.DB, orderID uint) (*domain.Order, error)
	Save(ctx context.Context, tx *gorm.DB, order *domain.Order) error
	Delete(ctx context.Context, tx *gorm.DB, orderID uint) error
	ListParticipating(ctx context.Context, tx *gorm.DB, userID uint) ([]*domain.Order, error)
	CountByBusinessAndStatus(ctx context.Context, tx *gorm.DB, businessUserID uint, status string) (int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *domain.Order) (*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if err := transaction.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (or *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, orderID uint) (*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var result domain.Order
	if err := transaction.WithContext(ctx).
		First(&result, orderID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *orderRepo) Save(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(ctx).Save(order).Error
}

func (or *orderRepo) Delete(ctx context.Context, tx *gorm.DB, orderID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(ctx).Delete(&domain.Order{}, orderID).Error
}

// ListParticipating returns orders where the user sits on either side of
// the transaction, newest first.
func (or *orderRepo) ListParticipating(ctx context.Context, tx *gorm.DB, userID uint) ([]*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*domain.Order
	if err := transaction.WithContext(ctx).
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) CountByBusinessAndStatus(ctx context.Context, tx *gorm.DB, businessUserID uint, status string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Order{}).
		Where("business_user_id = ? AND status = ?", businessUserID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
