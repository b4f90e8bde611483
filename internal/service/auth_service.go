package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email is already registered")
)

// AuthService handles account registration and JWT authentication
type AuthService struct {
	accountRepo repository.AccountRepo
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(accountRepo repository.AccountRepo, jwtSecret string) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    24 * time.Hour,
	}
}

// Register creates an account with a bcrypt-hashed password and returns a
// signed token for the new account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	id, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	return s.issueToken(id)
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(account.ID)
}

// ValidateToken validates an account JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AccountClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueToken(accountID string) (*model.LoginResponse, error) {
	claims := &model.AccountClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		AccountID: accountID,
	}, nil
}
