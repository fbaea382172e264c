package dto

import (
	"time"

	"github.com/Frey210/SiWarga/internal/model"
)

// ── requests ──

// RegisterRequest creates a resident account. Registration always yields the
// WARGA role; administrators are provisioned out of band.
type RegisterRequest struct {
	Email       string `json:"email"        binding:"required,email"`
	Password    string `json:"password"     binding:"required,min=8,max=72"`
	FullName    string `json:"full_name"    binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	NIK         string `json:"nik"          binding:"required,len=16"`
	KKNumber    string `json:"kk_number"    binding:"required,len=16"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ── responses ──

// TokenResponse carries the issued token pair.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // access token TTL in seconds
	User         UserResponse `json:"user"`
}

// UserResponse is the outward shape of a user. The store entity is never
// serialized directly.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	NIK         string    `json:"nik"`
	KKNumber    string    `json:"kk_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUserResponse maps a user entity to its response shape.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.UserID,
		Email:       u.Email,
		Role:        u.Role,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		NIK:         u.NIK,
		KKNumber:    u.KKNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
