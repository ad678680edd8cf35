// Package app holds the application services and business logic.
package app

import (
	"context"
	"regexp"

	"recipebox/internal/domain"
	"recipebox/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailShape = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 6

// AuthService handles registration, credential verification, and session
// token issuance.
type AuthService struct {
	users  domain.UserRepository
	tokens *token.Codec
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, tokens *token.Codec) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user and issues a session token for it. The token
// is issued only after the store has confirmed the write, so a failed
// persistence never leaves the caller with a session for a missing user.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	if email == "" || password == "" || name == "" {
		return nil, "", domain.Validation("all fields are required")
	}
	if !emailShape.MatchString(email) {
		return nil, "", domain.Validation("invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, "", domain.Validation("password must be at least 6 characters")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, email, string(hash), name)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login verifies credentials and issues a fresh session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// CurrentUser resolves a user id from a verified session to its account.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// LoginSSO issues a session for an identity already verified by the OIDC
// provider, auto-provisioning the account on first login.
func (s *AuthService) LoginSSO(ctx context.Context, email, name string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		// Empty password hash: SSO accounts never log in with credentials.
		user, err = s.users.Create(ctx, email, "", name)
		if err != nil {
			// Concurrent first login can hit the unique index.
			user, err = s.users.GetByEmail(ctx, email)
			if err != nil || user == nil {
				return nil, "", err
			}
		}
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}
