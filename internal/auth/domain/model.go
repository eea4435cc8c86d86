// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account allowed to sign in. Password holds the bcrypt hash and
// is never serialized.
type User struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Nombre    string       `gorm:"column:nombre;not null" json:"nombre"`
	Email     string       `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password  string       `gorm:"column:password;not null" json:"-"`
	Rol       string       `gorm:"column:rol;not null" json:"rol"`
	Estado    string       `gorm:"column:estado;not null" json:"estado"`
	CreatedAt time.Time    `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "usuarios" }

// Principal is the identity carried by a session token.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Rol   string `json:"rol"`
}

func (p Principal) IsAdmin() bool {
	return p.Rol == RoleAdmin
}

// UserSummary is the public view of a user returned on login.
type UserSummary struct {
	ID     snowflake.ID `json:"id"`
	Email  string       `json:"email"`
	Rol    string       `json:"rol"`
	Nombre string       `json:"nombre"`
}
