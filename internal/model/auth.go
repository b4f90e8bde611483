package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account is a registered user who owns surveys.
type Account struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash []byte    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// AccountClaims are JWT claims for account authentication
type AccountClaims struct {
	AccountID string `json:"accountId"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful registration or login
type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountId"`
}
