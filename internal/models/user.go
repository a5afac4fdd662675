package models

import "time"

type User struct {
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // "user" ou "admin"
	CreatedAt    time.Time `json:"created_at"`
}
