package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	offerrepo "github.com/craftora/craftora-backend/internal/data/repos/offer"
	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/platform/logger"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

// OfferPageSize is both the default and the maximum page size of the offer
// listing. Clients may ask for less, never for more.
const OfferPageSize = 6

// OfferListQuery carries the raw query parameters of the offer listing.
// Values are kept as strings so malformed input surfaces as a validation
// error naming the parameter instead of being silently dropped.
type OfferListQuery struct {
	CreatorID       string
	MinPrice        string
	MaxDeliveryTime string
	Search          string
	Ordering        string
	Page            string
	PageSize        string
}

type OfferDetailLink struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type UserSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferRender is the aggregated read shape of an offer. MinPrice and
// MinDeliveryTime are nil when the offer has no details.
type OfferRender struct {
	ID              uint              `json:"id"`
	User            uint              `json:"user"`
	Title           string            `json:"title"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailLink `json:"details"`
	MinPrice        *int              `json:"min_price"`
	MinDeliveryTime *int              `json:"min_delivery_time"`
	UserDetails     *UserSummary      `json:"user_details,omitempty"`
}

type OfferPage struct {
	Count    int64
	Page     int
	PageSize int
	Results  []*OfferRender
}

type OfferDetailInput struct {
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              int      `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

type OfferCreateInput struct {
	Title       string             `json:"title"`
	Image       string             `json:"image"`
	Description string             `json:"description"`
	Details     []OfferDetailInput `json:"details"`
}

// OfferDetailUpdate is a partial update of one tier, addressed by its
// offer_type. Nil fields are left untouched.
type OfferDetailUpdate struct {
	OfferType          string    `json:"offer_type"`
	Title              *string   `json:"title"`
	Revisions          *int      `json:"revisions"`
	DeliveryTimeInDays *int      `json:"delivery_time_in_days"`
	Price              *int      `json:"price"`
	Features           *[]string `json:"features"`
}

type OfferUpdateInput struct {
	Title       *string             `json:"title"`
	Image       *string             `json:"image"`
	Description *string             `json:"description"`
	Details     []OfferDetailUpdate `json:"details"`
}

type OfferService interface {
	List(ctx context.Context, query OfferListQuery) (*OfferPage, error)
	Create(ctx context.Context, input OfferCreateInput) (*domain.Offer, error)
	Retrieve(ctx context.Context, offerID uint) (*OfferRender, error)
	Update(ctx context.Context, offerID uint, input OfferUpdateInput) (*domain.Offer, error)
	Delete(ctx context.Context, offerID uint) error
	GetDetail(ctx context.Context, detailID uint) (*domain.OfferDetail, error)
}

type offerService struct {
	db         *gorm.DB
	log        *logger.Logger
	offerRepo  offerrepo.OfferRepo
	detailRepo offerrepo.OfferDetailRepo
	userRepo   userrepo.UserRepo
}

func NewOfferService(
	db *gorm.DB,
	log *logger.Logger,
	offerRepo offerrepo.OfferRepo,
	detailRepo offerrepo.OfferDetailRepo,
	userRepo userrepo.UserRepo,
) OfferService {
	serviceLog := log.With("service", "OfferService")
	return &offerService{
		db:         db,
		log:        serviceLog,
		offerRepo:  offerRepo,
		detailRepo: detailRepo,
		userRepo:   userRepo,
	}
}

func featuresToJSON(features []string) (datatypes.JSON, error) {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func renderOffer(offer *domain.Offer, owner *domain.User) *OfferRender {
	r := &OfferRender{
		ID:          offer.ID,
		User:        offer.UserID,
		Title:       offer.Title,
		Image:       offer.Image,
		Description: offer.Description,
		CreatedAt:   offer.CreatedAt,
		UpdatedAt:   offer.UpdatedAt,
		Details:     make([]OfferDetailLink, 0, len(offer.Details)),
	}
	for i := range offer.Details {
		d := &offer.Details[i]
		r.Details = append(r.Details, OfferDetailLink{
			ID:  d.ID,
			URL: fmt.Sprintf("/offerdetails/%d/", d.ID),
		})
		if r.MinPrice == nil || d.Price < *r.MinPrice {
			price := d.Price
			r.MinPrice = &price
		}
		if r.MinDeliveryTime == nil || d.DeliveryTimeInDays < *r.MinDeliveryTime {
			days := d.DeliveryTimeInDays
			r.MinDeliveryTime = &days
		}
	}
	if owner != nil {
		r.UserDetails = &UserSummary{
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
			Username:  owner.Username,
		}
	}
	return r
}

func (os *offerService) parseListFilter(query OfferListQuery) (offerrepo.ListFilter, int, int, error) {
	filter := offerrepo.ListFilter{Ordering: offerrepo.OrderingUpdatedAt}

	if query.CreatorID != "" {
		id, err := strconv.ParseUint(query.CreatorID, 10, 64)
		if err != nil {
			return filter, 0, 0, apperr.Validation("creator_id", "creator_id has to be a number")
		}
		creator := uint(id)
		filter.CreatorID = &creator
	}
	if query.MinPrice != "" {
		v, err := strconv.Atoi(query.MinPrice)
		if err != nil {
			return filter, 0, 0, apperr.Validation("min_price", "min_price has to be a number")
		}
		filter.MinPrice = &v
	}
	if query.MaxDeliveryTime != "" {
		v, err := strconv.Atoi(query.MaxDeliveryTime)
		if err != nil {
			return filter, 0, 0, apperr.Validation("max_delivery_time", "max_delivery_time has to be a number")
		}
		filter.MaxDeliveryTime = &v
	}
	filter.Search = query.Search

	switch query.Ordering {
	case offerrepo.OrderingUpdatedAt, offerrepo.OrderingUpdatedAtDesc,
		offerrepo.OrderingMinPrice, offerrepo.OrderingMinPriceDesc:
		filter.Ordering = query.Ordering
	}

	page := 1
	if query.Page != "" {
		p, err := strconv.Atoi(query.Page)
		if err != nil || p < 1 {
			return filter, 0, 0, apperr.Validation("page", "page has to be a positive number")
		}
		page = p
	}
	pageSize := OfferPageSize
	if query.PageSize != "" {
		ps, err := strconv.Atoi(query.PageSize)
		if err != nil || ps < 1 {
			return filter, 0, 0, apperr.Validation("page_size", "page_size has to be a positive number")
		}
		if ps < pageSize {
			pageSize = ps
		}
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	return filter, page, pageSize, nil
}

func (os *offerService) List(ctx context.Context, query OfferListQuery) (*OfferPage, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceOffer, permissions.VerbList, nil); err != nil {
		return nil, err
	}

	filter, page, pageSize, err := os.parseListFilter(query)
	if err != nil {
		return nil, err
	}

	offers, total, err := os.offerRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list offers: %w", err))
	}
	// Pages past the end are addressable but do not exist.
	if page > 1 && int64(filter.Offset) >= total {
		return nil, apperr.NotFound("Invalid page.")
	}

	ownerIDs := make([]uint, 0, len(offers))
	seen := map[uint]bool{}
	for _, o := range offers {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ownerIDs = append(ownerIDs, o.UserID)
		}
	}
	owners, err := os.userRepo.GetByIDs(ctx, nil, ownerIDs)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load offer owners: %w", err))
	}
	ownerByID := make(map[uint]*domain.User, len(owners))
	for _, u := range owners {
		ownerByID[u.ID] = u
	}

	results := make([]*OfferRender, 0, len(offers))
	for _, o := range offers {
		results = append(results, renderOffer(o, ownerByID[o.UserID]))
	}
	return &OfferPage{Count: total, Page: page, PageSize: pageSize, Results: results}, nil
}

func validateDetailInput(index int, d OfferDetailInput, fieldErrs map[string][]string) {
	key := fmt.Sprintf("details[%d]", index)
	if d.Title == "" {
		fieldErrs[key] = append(fieldErrs[key], "title may not be blank")
	}
	if !domain.ValidOfferType(d.OfferType) {
		fieldErrs[key] = append(fieldErrs[key], fmt.Sprintf("offer_type '%s' is not a valid choice", d.OfferType))
	}
	if d.Price < 0 {
		fieldErrs[key] = append(fieldErrs[key], "price may not be negative")
	}
	if d.DeliveryTimeInDays < 1 {
		fieldErrs[key] = append(fieldErrs[key], "delivery_time_in_days must be at least 1")
	}
}

func (os *offerService) Create(ctx context.Context, input OfferCreateInput) (*domain.Offer, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceOffer, permissions.VerbCreate, nil); err != nil {
		return nil, err
	}

	fieldErrs := map[string][]string{}
	if input.Title == "" {
		fieldErrs["title"] = append(fieldErrs["title"], "This field may not be blank.")
	}
	if len(input.Details) < domain.MinOfferDetails {
		fieldErrs["details"] = append(fieldErrs["details"], "An offer must contain at least 3 details.")
	}
	tiers := map[string]bool{}
	for i, d := range input.Details {
		validateDetailInput(i, d, fieldErrs)
		if tiers[d.OfferType] {
			fieldErrs["details"] = append(fieldErrs["details"],
				fmt.Sprintf("offer_type '%s' appears more than once", d.OfferType))
		}
		tiers[d.OfferType] = true
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.ValidationMap(fieldErrs)
	}

	newOffer := &domain.Offer{
		UserID:      rd.UserID,
		Title:       input.Title,
		Image:       input.Image,
		Description: input.Description,
		Details:     make([]domain.OfferDetail, 0, len(input.Details)),
	}
	for _, d := range input.Details {
		features, err := featuresToJSON(d.Features)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		newOffer.Details = append(newOffer.Details, domain.OfferDetail{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           features,
			OfferType:          d.OfferType,
		})
	}

	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := os.offerRepo.Create(ctx, tx, newOffer)
		return err
	}); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create offer: %w", err))
	}
	return newOffer, nil
}

func (os *offerService) Retrieve(ctx context.Context, offerID uint) (*OfferRender, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceOffer, permissions.VerbRetrieve, nil); err != nil {
		return nil, err
	}

	found, err := os.offerRepo.GetByID(ctx, nil, offerID)
	if err != nil {
		return nil, apperr.From(err)
	}
	// The single-offer rendering omits the owner summary.
	return renderOffer(found, nil), nil
}

// Update applies the offer field changes and reconciles the incoming
// partial detail updates against the existing tiers, all inside one
// transaction: an unmatched offer_type rolls back every change.
func (os *offerService) Update(ctx context.Context, offerID uint, input OfferUpdateInput) (*domain.Offer, error) {
	rd := requestdata.Current(ctx)

	found, err := os.offerRepo.GetByID(ctx, nil, offerID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if err := permissions.Check(rd, permissions.ResourceOffer, permissions.VerbUpdate, found); err != nil {
		return nil, err
	}

	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Title != nil {
			found.Title = *input.Title
		}
		if input.Image != nil {
			found.Image = *input.Image
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		if err := os.offerRepo.Save(ctx, tx, found); err != nil {
			return fmt.Errorf("save offer: %w", err)
		}

		if input.Details == nil {
			return nil
		}

		existing, err := os.detailRepo.ListByOfferID(ctx, tx, found.ID)
		if err != nil {
			return fmt.Errorf("load details: %w", err)
		}
		byTier := make(map[string]*domain.OfferDetail, len(existing))
		for _, d := range existing {
			byTier[d.OfferType] = d
		}

		for _, upd := range input.Details {
			target, ok := byTier[upd.OfferType]
			if !ok {
				return apperr.Validation("details",
					fmt.Sprintf("Detail with offer_type '%s' not found.", upd.OfferType))
			}
			if upd.Title != nil {
				target.Title = *upd.Title
			}
			if upd.Revisions != nil {
				target.Revisions = *upd.Revisions
			}
			if upd.DeliveryTimeInDays != nil {
				target.DeliveryTimeInDays = *upd.DeliveryTimeInDays
			}
			if upd.Price != nil {
				target.Price = *upd.Price
			}
			if upd.Features != nil {
				features, err := featuresToJSON(*upd.Features)
				if err != nil {
					return err
				}
				target.Features = features
			}
			if err := os.detailRepo.Save(ctx, tx, target); err != nil {
				return fmt.Errorf("save detail: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, apperr.From(err)
	}

	updated, err := os.offerRepo.GetByID(ctx, nil, found.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	return updated, nil
}

func (os *offerService) Delete(ctx context.Context, offerID uint) error {
	rd := requestdata.Current(ctx)

	found, err := os.offerRepo.GetByID(ctx, nil, offerID)
	if err != nil {
		return apperr.From(err)
	}
	if err := permissions.Check(rd, permissions.ResourceOffer, permissions.VerbDelete, found); err != nil {
		return err
	}

	if err := os.offerRepo.Delete(ctx, nil, offerID); err != nil {
		return apperr.Internal(fmt.Errorf("delete offer: %w", err))
	}
	return nil
}

func (os *offerService) GetDetail(ctx context.Context, detailID uint) (*domain.OfferDetail, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceOfferDetail, permissions.VerbRetrieve, nil); err != nil {
		return nil, err
	}

	found, err := os.detailRepo.GetByID(ctx, nil, detailID)
	if err != nil {
		return nil, apperr.From(err)
	}
	return found, nil
}
