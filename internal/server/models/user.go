// Package models contains the server-side row types shared by repositories
// and services.
package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
