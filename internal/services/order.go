package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	offerrepo "github.com/craftora/craftora-backend/internal/data/repos/offer"
	orderrepo "github.com/craftora/craftora-backend/internal/data/repos/order"
	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/platform/logger"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

type OrderCreateInput struct {
	OfferDetailID uint `json:"offer_detail_id"`
}

type OrderUpdateInput struct {
	Status string `json:"status"`
}

type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Create(ctx context.Context, input OrderCreateInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, input OrderUpdateInput) (*domain.Order, error)
	Delete(ctx context.Context, orderID uint) error
	CountForBusiness(ctx context.Context, businessUserID uint, status string) (int64, error)
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	orderRepo   orderrepo.OrderRepo
	detailRepo  offerrepo.OfferDetailRepo
	offerRepo   offerrepo.OfferRepo
	userRepo    userrepo.UserRepo
	profileRepo userrepo.ProfileRepo
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orderRepo orderrepo.OrderRepo,
	detailRepo offerrepo.OfferDetailRepo,
	offerRepo offerrepo.OfferRepo,
	userRepo userrepo.UserRepo,
	profileRepo userrepo.ProfileRepo,
) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:          db,
		log:         serviceLog,
		orderRepo:   orderRepo,
		detailRepo:  detailRepo,
		offerRepo:   offerRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// List returns only orders the principal participates in, on either the
// customer or the business side.
func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceOrder, permissions.VerbList, nil); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListParticipating(ctx, nil, rd.UserID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list orders: %w", err))
	}
	return orders, nil
}

// Create materializes an order from the referenced offer detail: the detail
// fields are copied into the order row once and never re-synced, so later
// edits to the detail leave existing orders untouched.
func (s *orderService) Create(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceOrder, permissions.VerbCreate, nil); err != nil {
		return nil, err
	}

	var created *domain.Order
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detail, err := s.detailRepo.GetByID(ctx, tx, input.OfferDetailID)
		if err != nil {
			if apperr.From(err).Kind == apperr.KindNotFound {
				return apperr.Validation("offer_detail_id", "Offer detail with this ID does not exist.")
			}
			return fmt.Errorf("load offer detail: %w", err)
		}

		parent, err := s.offerRepo.GetByID(ctx, tx, detail.OfferID)
		if err != nil {
			return fmt.Errorf("load parent offer: %w", err)
		}

		created, err = s.orderRepo.Create(ctx, tx, &domain.Order{
			CustomerUserID:     rd.UserID,
			BusinessUserID:     parent.UserID,
			OfferDetailID:      detail.ID,
			Title:              detail.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           detail.Features,
			OfferType:          detail.OfferType,
			Status:             domain.OrderStatusInProgress,
		})
		return err
	}); err != nil {
		return nil, apperr.From(err)
	}
	return created, nil
}

// UpdateStatus is the only mutation an order supports after creation. Any
// other field in the payload is ignored by construction of the input type.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, input OrderUpdateInput) (*domain.Order, error) {
	rd := requestdata.Current(ctx)

	found, err := s.orderRepo.GetByID(ctx, nil, orderID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if err := permissions.Check(rd, permissions.ResourceOrder, permissions.VerbUpdate, found); err != nil {
		return nil, err
	}

	if !domain.ValidOrderStatus(input.Status) {
		return nil, apperr.Validation("status",
			fmt.Sprintf("'%s' is not a valid choice. Valid choices are: in_progress, completed, cancelled.", input.Status))
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found.Status = input.Status
		return s.orderRepo.Save(ctx, tx, found)
	}); err != nil {
		return nil, apperr.Internal(fmt.Errorf("update order status: %w", err))
	}
	return found, nil
}

func (s *orderService) Delete(ctx context.Context, orderID uint) error {
	rd := requestdata.Current(ctx)

	found, err := s.orderRepo.GetByID(ctx, nil, orderID)
	if err != nil {
		return apperr.From(err)
	}
	if err := permissions.Check(rd, permissions.ResourceOrder, permissions.VerbDelete, found); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, nil, orderID); err != nil {
		return apperr.Internal(fmt.Errorf("delete order: %w", err))
	}
	return nil
}

// CountForBusiness counts a business user's orders in the given status. A
// target that exists but is not a business profile is treated as not found,
// not as zero.
func (s *orderService) CountForBusiness(ctx context.Context, businessUserID uint, status string) (int64, error) {
	rd := requestdata.Current(ctx)
	if !rd.Authenticated {
		return 0, apperr.AuthenticationRequired("")
	}

	if _, err := s.userRepo.GetByID(ctx, nil, businessUserID); err != nil {
		return 0, apperr.From(err)
	}
	profile, err := s.profileRepo.GetByUserID(ctx, nil, businessUserID)
	if err != nil {
		if apperr.From(err).Kind == apperr.KindNotFound {
			return 0, apperr.NotFound("User is not a business user")
		}
		return 0, apperr.Internal(fmt.Errorf("load profile: %w", err))
	}
	if profile.Type != domain.ProfileTypeBusiness {
		return 0, apperr.NotFound("User is not a business user")
	}

	count, err := s.orderRepo.CountByBusinessAndStatus(ctx, nil, businessUserID, status)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("count orders: %w", err))
	}
	return count, nil
}
