package domain

import "time"

// User represents a storefront customer account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}
