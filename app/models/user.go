package models

import "time"

type User struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Roles []*Role `json:"roles,omitempty"`
}

// FullName returns the display name used on screens and documents.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
