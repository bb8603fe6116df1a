package user

import "time"

// User is an admin dashboard account
type User struct {
	ID           int
	UserName     string
	Email        string
	HashPassword string
	Role         string
	Status       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
