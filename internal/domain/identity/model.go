package identity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a registered clinic patient. PasswordHash never leaves the
// server.
type Patient struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	DateOfBirth  string    `json:"dateOfBirth"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterInput is the payload accepted by the register endpoint.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
}

// LoginInput is the payload accepted by the login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by register and login: a bearer token plus the
// patient's profile.
type Session struct {
	Token   string   `json:"token"`
	Patient *Patient `json:"patient"`
}
