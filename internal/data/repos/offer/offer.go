package offer

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

// Ordering keys accepted by ListFilter. The service layer validates the
// incoming query parameter against these before it reaches the repo.
const (
	OrderingUpdatedAt     = "updated_at"
	OrderingUpdatedAtDesc = "-updated_at"
	OrderingMinPrice      = "min_price"
	OrderingMinPriceDesc  = "-min_price"
)

// ListFilter narrows the offer listing. Min/max bounds apply to the
// aggregated detail columns, not to any single detail row.
type ListFilter struct {
	CreatorID       *uint
	MinPrice        *int
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Limit           int
	Offset          int
}

type OfferRepo interface {
	Create(ctx context.Context, tx *gorm.DB, offer *domain.Offer) (*domain.Offer, error)
	GetByID(ctx context.Context, tx *gorm.DB, offerID uint) (*domain.Offer, error)
	Save(ctx context.Context, tx *gorm.DB, offer *domain.Offer) error
	Delete(ctx context.Context, tx *gorm.DB, offerID uint) error
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*domain.Offer, int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type offerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfferRepo(db *gorm.DB, baseLog *logger.Logger) OfferRepo {
	repoLog := baseLog.With("repo", "OfferRepo")
	return &offerRepo{db: db, log: repoLog}
}

func (or *offerRepo) Create(ctx context.Context, tx *gorm.DB, offer *domain.Offer) (*domain.Offer, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if err := transaction.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

func (or *offerRepo) GetByID(ctx context.Context, tx *gorm.DB, offerID uint) (*domain.Offer, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var result domain.Offer
	if err := transaction.WithContext(ctx).
		Preload("Details").
		First(&result, offerID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *offerRepo) Save(ctx context.Context, tx *gorm.DB, offer *domain.Offer) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	// Details are reconciled separately; saving them here would resurrect
	// stale rows loaded before the update.
	return transaction.WithContext(ctx).Omit("Details").Save(offer).Error
}

func (or *offerRepo) Delete(ctx context.Context, tx *gorm.DB, offerID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(ctx).
		Select("Details").
		Delete(&domain.Offer{ID: offerID}).Error
}

const detailAggregateJoin = `LEFT JOIN (
SELECT offer_id, MIN(price) AS min_price, MIN(delivery_time_in_days) AS min_delivery_time
FROM offer_details GROUP BY offer_id
) agg ON agg.offer_id = offers.id`

func (or *offerRepo) filtered(ctx context.Context, transaction *gorm.DB, filter ListFilter) *gorm.DB {
	q := transaction.WithContext(ctx).
		Model(&domain.Offer{}).
		Joins(detailAggregateJoin)

	if filter.CreatorID != nil {
		q = q.Where("offers.user_id = ?", *filter.CreatorID)
	}
	if filter.MinPrice != nil {
		q = q.Where("agg.min_price >= ?", *filter.MinPrice)
	}
	if filter.MaxDeliveryTime != nil {
		q = q.Where("agg.min_delivery_time <= ?", *filter.MaxDeliveryTime)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(offers.title) LIKE ? OR LOWER(offers.description) LIKE ?", needle, needle)
	}
	return q
}

func orderingExpr(ordering string) string {
	switch ordering {
	case OrderingUpdatedAtDesc:
		return "offers.updated_at DESC"
	case OrderingMinPrice:
		return "agg.min_price ASC"
	case OrderingMinPriceDesc:
		return "agg.min_price DESC"
	default:
		return "offers.updated_at ASC"
	}
}

func (or *offerRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*domain.Offer, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var total int64
	if err := or.filtered(ctx, transaction, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := or.filtered(ctx, transaction, filter).
		Order(orderingExpr(filter.Ordering)).
		Preload("Details")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*domain.Offer
	if err := q.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (or *offerRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Offer{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
