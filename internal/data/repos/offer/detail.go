package offer

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type OfferDetailRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, detailID uint) (*domain.OfferDetail, error)
	ListByOfferID(ctx context.Context, tx *gorm.DB, offerID uint) ([]*domain.OfferDetail, error)
	Save(ctx context.Context, tx *gorm.DB, detail *domain.OfferDetail) error
}

type offerDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfferDetailRepo(db *gorm.DB, baseLog *logger.Logger) OfferDetailRepo {
	repoLog := baseLog.With("repo", "OfferDetailRepo")
	return &offerDetailRepo{db: db, log: repoLog}
}

func (dr *offerDetailRepo) GetByID(ctx context.Context, tx *gorm.DB, detailID uint) (*domain.OfferDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result domain.OfferDetail
	if err := transaction.WithContext(ctx).
		First(&result, detailID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *offerDetailRepo) ListByOfferID(ctx context.Context, tx *gorm.DB, offerID uint) ([]*domain.OfferDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*domain.OfferDetail
	if err := transaction.WithContext(ctx).
		Where("offer_id = ?", offerID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *offerDetailRepo) Save(ctx context.Context, tx *gorm.DB, detail *domain.OfferDetail) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).Save(detail).Error
}
