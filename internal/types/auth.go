package types

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is the registration request body.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the password change request body.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User is the API-facing user representation. The password hash never leaves
// the db package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse carries the authenticated user and a signed token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate checks the registration request fields.
func (r *CreateUserRequest) Validate() error {
	return payloadValidator.Struct(r)
}

// Validate checks the login request fields.
func (r *LoginRequest) Validate() error {
	return payloadValidator.Struct(r)
}

// Validate checks the password change request fields.
func (r *UpdatePasswordRequest) Validate() error {
	return payloadValidator.Struct(r)
}
