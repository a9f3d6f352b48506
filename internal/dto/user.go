package dto

import (
	"github.com/conftrack/paper-review-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash is never
// exposed.
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.RoleName `json:"role,omitempty"`
}

// LoginResponse is returned on successful authentication. The token is a
// non-cryptographic placeholder, not a bearer credential.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.Name,
	}
}
