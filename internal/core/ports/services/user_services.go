package services

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	// Register creates a new user with a bcrypt password hash.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies email and password, returning the user on success.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateOAuthUser returns the user for a verified OAuth identity,
	// creating the account on first sign-in.
	FindOrCreateOAuthUser(ctx context.Context, name string, email string, provider domain.AuthProvider, providerUserID string) (*domain.User, error)

	// GetUserByID retrieves a user by their identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade issues tokens for authenticated users.
type AuthSvcFacade interface {
	// Login authenticates the credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// TokenForUser issues a signed JWT for an already-authenticated user.
	TokenForUser(ctx context.Context, user *domain.User) (*dto.LoginResponse, error)
}
