package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/repository"
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	Issuer         string
	BcryptCost     int
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a delegate account and returns a signed token
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.AuthResponse, error)
	// Login authenticates a user by email and password
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	config   *AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, config *AuthServiceConfig) AuthService {
	if config == nil {
		config = &AuthServiceConfig{}
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.AccessTokenTTL == 0 {
		config.AccessTokenTTL = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "aoacon"
	}
	return &authService{
		userRepo: userRepo,
		config:   config,
	}
}

// Register creates a delegate account and returns a signed token
func (s *authService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(req.Name, email, req.Phone, string(hashed), domain.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	user.Institute = req.Institute
	user.Designation = req.Designation
	user.City = req.City
	user.State = req.State
	if req.Country != "" {
		user.Country = req.Country
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetUser retrieves a user by id
func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) issueToken(user *domain.User) (*dto.AuthResponse, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"role":     string(user.Role),
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"iss":      s.config.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:        dto.FromUser(user),
		AccessToken: signed,
		ExpiresIn:   int64(s.config.AccessTokenTTL.Seconds()),
	}, nil
}
