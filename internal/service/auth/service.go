package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
)

// Client-input failures surfaced by account operations.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("incorrect role for this account")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const bcryptCost = 10

// Claims is the JWT payload issued on login and consumed by the auth
// middleware.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service handles account signup, login and token verification.
type Service struct {
	users    repo.UserStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(users repo.UserStore, secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Signup creates a new account. Every signup gets the staff role; admins are
// provisioned out of band.
func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return models.User{}, ErrMissingFields
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.InsertUser(ctx, models.User{
		Username:  username,
		Email:     email,
		Role:      models.RoleStaff,
		Status:    models.StatusActive,
		Password:  string(hash),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, repo.ErrDuplicate) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("email", email))

	user.Password = ""
	return user, nil
}

// Login verifies the credentials and the claimed role, then issues a signed
// token carrying the account identity.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Role == "" {
		return "", models.User{}, ErrMissingFields
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	if user.Role != req.Role {
		return "", models.User{}, ErrRoleMismatch
	}

	now := s.now()
	claims := Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.User{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("email", email), zap.String("role", user.Role))

	user.Password = ""
	return token, user, nil
}

// ParseToken verifies a token string and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
