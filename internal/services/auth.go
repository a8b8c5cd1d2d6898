package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/platform/logger"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

type RegistrationInput struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeated_password"`
	Type             string `json:"type"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthPayload is the body returned by the registration and login endpoints.
type AuthPayload struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   uint   `json:"user_id"`
}

type AuthService interface {
	Register(ctx context.Context, input RegistrationInput) (*AuthPayload, error)
	Login(ctx context.Context, input LoginInput) (*AuthPayload, error)
	// SetContextFromToken validates the token and attaches the resolved
	// request identity (user id, role, staff flag) to the context.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     user.UserRepo
	profileRepo  user.ProfileRepo
	jwtSecretKey string
	accessTTL    time.Duration
	roleCfg      permissions.RoleResolverConfig
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo user.UserRepo,
	profileRepo user.ProfileRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	roleCfg permissions.RoleResolverConfig,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		roleCfg:      roleCfg,
	}
}

func (as *authService) Register(ctx context.Context, input RegistrationInput) (*AuthPayload, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	fieldErrs := map[string][]string{}
	if input.Username == "" {
		fieldErrs["username"] = append(fieldErrs["username"], "This field may not be blank.")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		fieldErrs["email"] = append(fieldErrs["email"], "Enter a valid email address.")
	}
	if input.Password == "" {
		fieldErrs["password"] = append(fieldErrs["password"], "This field may not be blank.")
	}
	if input.Password != input.RepeatedPassword {
		fieldErrs["repeated_password"] = append(fieldErrs["repeated_password"], "Passwords do not match.")
	}
	profileType := input.Type
	if profileType == "" {
		profileType = domain.ProfileTypeCustomer
	}
	if !domain.ValidProfileType(profileType) {
		fieldErrs["type"] = append(fieldErrs["type"], "Type must be 'business' or 'customer'.")
	}

	if len(fieldErrs) == 0 {
		taken, err := as.userRepo.UsernameExists(ctx, nil, input.Username)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("check username: %w", err))
		}
		if taken {
			fieldErrs["username"] = append(fieldErrs["username"], "A user with that username already exists.")
		}
		used, err := as.userRepo.EmailExists(ctx, nil, input.Email)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("check email: %w", err))
		}
		if used {
			fieldErrs["email"] = append(fieldErrs["email"], "This Email is already in use!")
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.ValidationMap(fieldErrs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	newUser := &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hash),
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, newUser); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		profile := &domain.UserProfile{UserID: newUser.ID, Type: profileType}
		if _, err := as.profileRepo.Create(ctx, tx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	}); err != nil {
		return nil, apperr.Internal(err)
	}

	token, err := as.generateAccessToken(newUser)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthPayload{
		Token:    token,
		Username: newUser.Username,
		Email:    newUser.Email,
		UserID:   newUser.ID,
	}, nil
}

func (as *authService) Login(ctx context.Context, input LoginInput) (*AuthPayload, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return nil, apperr.NonFieldValidation("Username and password are required.")
	}

	found, err := as.userRepo.GetByUsername(ctx, nil, input.Username)
	if err != nil {
		if apperr.From(err).Kind == apperr.KindNotFound {
			return nil, apperr.NonFieldValidation("Unable to log in with provided credentials.")
		}
		return nil, apperr.Internal(fmt.Errorf("load user: %w", err))
	}
	if bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(input.Password)) != nil {
		return nil, apperr.NonFieldValidation("Unable to log in with provided credentials.")
	}

	token, err := as.generateAccessToken(found)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthPayload{
		Token:    token,
		Username: found.Username,
		Email:    found.Email,
		UserID:   found.ID,
	}, nil
}

func (as *authService) generateAccessToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(u.ID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, apperr.AuthenticationRequired("Invalid token.")
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return ctx, apperr.AuthenticationRequired("Invalid token.")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return ctx, apperr.AuthenticationRequired("Invalid token.")
	}

	found, err := as.userRepo.GetByID(ctx, nil, uint(userID))
	if err != nil {
		return ctx, apperr.AuthenticationRequired("User inactive or deleted.")
	}

	profile, err := as.profileRepo.GetByUserID(ctx, nil, found.ID)
	if err != nil {
		if apperr.From(err).Kind != apperr.KindNotFound {
			return ctx, apperr.Internal(fmt.Errorf("load profile: %w", err))
		}
		profile = nil
	}

	rd := &requestdata.RequestData{
		TokenString:   tokenString,
		UserID:        found.ID,
		Role:          permissions.ResolveRole(true, profile, as.roleCfg),
		IsStaff:       found.IsStaff,
		Authenticated: true,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
