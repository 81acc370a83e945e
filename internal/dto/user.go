package dto

import (
	"time"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// RegisterUserRequest defines the payload for registering a new user.
type RegisterUserRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	BusinessName  string `json:"businessName"`
	BusinessState string `json:"businessState"`
}

// LoginRequest defines the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCodeRequest carries the Google authorization code from the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	BusinessName  string    `json:"businessName,omitempty"`
	BusinessState string    `json:"businessState,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		BusinessName:  u.BusinessName,
		BusinessState: u.BusinessState,
		CreatedAt:     u.CreatedAt,
	}
}
