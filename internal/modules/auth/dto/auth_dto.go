package dto

import (
	"time"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Admin selects the admin login endpoint.
	Admin bool `json:"admin"`
}

type AuthResponse struct {
	SessionID  string            `json:"session_id"`
	ExpiresAt  time.Time         `json:"expires_at"`
	User       *entity.User      `json:"user"`
	Context    academicyear.View `json:"context"`
	Navigation []entity.NavItem  `json:"navigation"`
}
