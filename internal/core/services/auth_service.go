package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/pkg/config"
)

// authService authenticates credentials and issues signed JWTs.
type authService struct {
	userSvc portssvc.UserSvcFacade
	cfg     *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(userSvc portssvc.UserSvcFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userSvc: userSvc, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login authenticates the credentials and issues a signed JWT with the user
// ID as the subject.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.TokenForUser(ctx, user)
}

// TokenForUser issues a signed JWT for an already-authenticated user. Google
// sign-in lands here after the ID token has been verified.
func (s *authService) TokenForUser(ctx context.Context, user *domain.User) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.JWTExpiryDuration)

	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign JWT", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("Issued access token", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
