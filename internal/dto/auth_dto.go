package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	AuthToken string    `json:"auth_token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ValidateSessionResponse struct {
	Username string `json:"username"`
}
