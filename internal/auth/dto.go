package auth

import "github.com/SakshamKandel/peakbrew-sub000/internal/users"

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields needed to onboard a business account.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
}

// LoginResponse returns the minted token with the account profile.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
