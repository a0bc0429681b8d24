package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"gorm.io/gorm"
)

// TokenPair is the login response body.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
	IsActive bool
	IsStaff  bool
}

// AuthService implements signup, login, and token refresh.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.Tokens
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.Tokens) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new account. Duplicate email is rejected before
// duplicate username; the password is stored as a bcrypt hash and never
// echoed back.
func (s *AuthService) Signup(in SignupInput) (*models.User, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return nil, apperr.Conflict("User with the email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.users.FindByUsername(in.Username); err == nil {
		return nil, apperr.Conflict("User with the username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		IsActive: in.IsActive,
		IsStaff:  in.IsStaff,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the username/password pair and issues a token pair.
// An unknown username and a wrong password produce the same failure.
func (s *AuthService) Login(username, password string, now time.Time) (*TokenPair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil || !auth.CheckPassword(user.Password, password) {
		return nil, apperr.Unauthenticated("Incorrect username or password")
	}

	access, err := s.tokens.IssueAccess(user.Username, now)
	if err != nil {
		return nil, fmt.Errorf("auth: issue access token: %w", err)
	}

	refresh, err := s.tokens.IssueRefresh(user.Username, now)
	if err != nil {
		return nil, fmt.Errorf("auth: issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		RefreshToken: refresh,
	}, nil
}

// Refresh issues a fresh refresh token for an already-authenticated user.
func (s *AuthService) Refresh(username string, now time.Time) (string, error) {
	token, err := s.tokens.IssueRefresh(username, now)
	if err != nil {
		return "", fmt.Errorf("auth: issue refresh token: %w", err)
	}
	return token, nil
}

// Greeting returns the authenticated home message.
func (s *AuthService) Greeting(user *models.User) string {
	return fmt.Sprintf("Hello %s, your email is %s", user.Username, user.Email)
}
