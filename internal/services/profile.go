package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/platform/logger"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

// ProfileRender flattens the user and profile records into the combined
// shape the profile endpoint exposes.
type ProfileRender struct {
	User         uint      `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

type CustomerProfileListItem struct {
	User       uint      `json:"user"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	File       string    `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
	Type       string    `json:"type"`
}

type BusinessProfileListItem struct {
	User         uint   `json:"user"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	File         string `json:"file"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Type         string `json:"type"`
}

// ProfileUpdateInput is a partial update. The profile type is read-only
// here: roles only change through direct administrative edits.
type ProfileUpdateInput struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

type ProfileService interface {
	Get(ctx context.Context, userID uint) (*ProfileRender, error)
	Update(ctx context.Context, userID uint, input ProfileUpdateInput) (*ProfileRender, error)
	ListBusiness(ctx context.Context) ([]*BusinessProfileListItem, error)
	ListCustomer(ctx context.Context) ([]*CustomerProfileListItem, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    userrepo.UserRepo
	profileRepo userrepo.ProfileRepo
}

func NewProfileService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	profileRepo userrepo.ProfileRepo,
) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func renderProfile(u *domain.User, p *domain.UserProfile) *ProfileRender {
	return &ProfileRender{
		User:         u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
		Email:        u.Email,
		CreatedAt:    p.CreatedAt,
	}
}

func (s *profileService) load(ctx context.Context, userID uint) (*domain.User, *domain.UserProfile, error) {
	u, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, nil, apperr.From(err)
	}
	p, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, nil, apperr.From(err)
	}
	return u, p, nil
}

func (s *profileService) Get(ctx context.Context, userID uint) (*ProfileRender, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceProfile, permissions.VerbRetrieve, nil); err != nil {
		return nil, err
	}

	u, p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return renderProfile(u, p), nil
}

func (s *profileService) Update(ctx context.Context, userID uint, input ProfileUpdateInput) (*ProfileRender, error) {
	rd := requestdata.Current(ctx)

	u, p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := permissions.Check(rd, permissions.ResourceProfile, permissions.VerbUpdate, p); err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email != u.Email {
			used, err := s.userRepo.EmailExists(ctx, nil, email)
			if err != nil {
				return nil, apperr.Internal(fmt.Errorf("check email: %w", err))
			}
			if used {
				return nil, apperr.Validation("email", "This Email is already in use!")
			}
		}
		input.Email = &email
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userChanged := false
		if input.FirstName != nil {
			u.FirstName = *input.FirstName
			userChanged = true
		}
		if input.LastName != nil {
			u.LastName = *input.LastName
			userChanged = true
		}
		if input.Email != nil {
			u.Email = *input.Email
			userChanged = true
		}
		if userChanged {
			if err := tx.WithContext(ctx).Save(u).Error; err != nil {
				return fmt.Errorf("save user: %w", err)
			}
		}

		if input.File != nil {
			p.File = *input.File
		}
		if input.Location != nil {
			p.Location = *input.Location
		}
		if input.Tel != nil {
			p.Tel = *input.Tel
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.WorkingHours != nil {
			p.WorkingHours = *input.WorkingHours
		}
		return s.profileRepo.Save(ctx, tx, p)
	}); err != nil {
		return nil, apperr.Internal(err)
	}
	return renderProfile(u, p), nil
}

func (s *profileService) ListBusiness(ctx context.Context) ([]*BusinessProfileListItem, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceProfile, permissions.VerbList, nil); err != nil {
		return nil, err
	}

	profiles, users, err := s.listWithUsers(ctx, domain.ProfileTypeBusiness)
	if err != nil {
		return nil, err
	}
	items := make([]*BusinessProfileListItem, 0, len(profiles))
	for _, p := range profiles {
		u := users[p.UserID]
		if u == nil {
			continue
		}
		items = append(items, &BusinessProfileListItem{
			User:         p.UserID,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			File:         p.File,
			Location:     p.Location,
			Tel:          p.Tel,
			Description:  p.Description,
			WorkingHours: p.WorkingHours,
			Type:         p.Type,
		})
	}
	return items, nil
}

func (s *profileService) ListCustomer(ctx context.Context) ([]*CustomerProfileListItem, error) {
	rd := requestdata.Current(ctx)
	if err := permissions.Check(rd, permissions.ResourceProfile, permissions.VerbList, nil); err != nil {
		return nil, err
	}

	profiles, users, err := s.listWithUsers(ctx, domain.ProfileTypeCustomer)
	if err != nil {
		return nil, err
	}
	items := make([]*CustomerProfileListItem, 0, len(profiles))
	for _, p := range profiles {
		u := users[p.UserID]
		if u == nil {
			continue
		}
		items = append(items, &CustomerProfileListItem{
			User:       p.UserID,
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			File:       p.File,
			UploadedAt: p.CreatedAt,
			Type:       p.Type,
		})
	}
	return items, nil
}

func (s *profileService) listWithUsers(ctx context.Context, profileType string) ([]*domain.UserProfile, map[uint]*domain.User, error) {
	profiles, err := s.profileRepo.ListByType(ctx, nil, profileType)
	if err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("list profiles: %w", err))
	}
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("load users: %w", err))
	}
	byID := make(map[uint]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return profiles, byID, nil
}
