package models

import "time"

// AdminUser is an editor account allowed to use the admin API.
type AdminUser struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
