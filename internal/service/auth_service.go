package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotApproved = errors.New("account has not been approved")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyDecided = errors.New("user registration already reviewed")
)

// AuthService manages registration, approval and token issuance.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	ListPending(ctx context.Context) ([]dto.UserResponse, error)
	Approve(ctx context.Context, userID uint, reviewer Actor) (dto.UserResponse, error)
	Reject(ctx context.Context, userID uint, reviewer Actor) (dto.UserResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	secret    string
	expiry    time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo repository.UserRepository, secret string, expiry time.Duration, validator *validator.Validate, logger zerolog.Logger) AuthService {
	if expiry <= 0 {
		expiry = 12 * time.Hour
	}
	return &authService{
		repo:      repo,
		secret:    secret,
		expiry:    expiry,
		validator: validator,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleTeacher
	}

	user := models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserStatusPending,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("username", user.Username).Msg("registration pending approval")
	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if user.Status != models.UserStatusApproved {
		return dto.LoginResponse{}, ErrAccountNotApproved
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.expiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) ListPending(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.ListByStatus(ctx, models.UserStatusPending)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}

func (s *authService) Approve(ctx context.Context, userID uint, reviewer Actor) (dto.UserResponse, error) {
	return s.review(ctx, userID, reviewer, models.UserStatusApproved)
}

func (s *authService) Reject(ctx context.Context, userID uint, reviewer Actor) (dto.UserResponse, error) {
	return s.review(ctx, userID, reviewer, models.UserStatusRejected)
}

func (s *authService) review(ctx context.Context, userID uint, reviewer Actor, decision models.UserStatus) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if user.Status != models.UserStatusPending {
		return dto.UserResponse{}, ErrUserAlreadyDecided
	}

	now := s.now()
	reviewerID := reviewer.ID
	user.Status = decision
	user.ReviewedBy = &reviewerID
	user.ReviewedAt = &now

	if err := s.repo.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().
		Uint("user_id", user.ID).
		Str("decision", string(decision)).
		Uint("reviewer_id", reviewer.ID).
		Msg("registration reviewed")

	return dto.NewUserResponse(user), nil
}
