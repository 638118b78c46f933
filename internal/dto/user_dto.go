package dto

import "time"

type UserResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type RenameUserRequest struct {
	NewUsername string `json:"new_username" validate:"required"`
}

type RenameUserResponse struct {
	Username string `json:"username"`
}
