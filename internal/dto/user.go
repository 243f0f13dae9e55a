package dto

import "time"

// LoginRequest is the login form and the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// RegisterRequest is the registration form and the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"max=120"`
	Email           string `form:"email" json:"email" binding:"max=254"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// UserResponse is returned when user info is needed (e.g. after login).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
