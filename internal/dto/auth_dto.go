package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request to authenticate with credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSyncRequest represents the request to upsert a Google-backed account
type GoogleSyncRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	GoogleID string `json:"googleId" binding:"required"`
	Picture  string `json:"picture"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Avatar         string    `json:"avatar"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthResponse represents a successful signup or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfilePictureResponse carries the stored picture URL
type UpdateProfilePictureResponse struct {
	ProfilePicture string `json:"profilePicture"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Avatar:         user.Avatar,
		CreatedAt:      user.CreatedAt,
	}
}
