package dto

import (
	"hotelier/infras/jwt"
	userModel "hotelier/internal/domains/user/model"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	t.AccessToken = pair.AccessToken
	t.RefreshToken = pair.RefreshToken
	t.TokenType = pair.TokenType
	t.ExpiresIn = pair.ExpiresIn
}

// ProfileResponse echoes the authenticated user.
type ProfileResponse struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
	Image *string `json:"image"`
}

func (p *ProfileResponse) FromModel(user userModel.User) {
	p.ID = user.ID
	p.Email = user.Email
	p.Name = user.Name
	p.Role = user.Role
	p.Image = user.Image
}
