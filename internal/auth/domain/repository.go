package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListUserFilter) ([]User, error)
	// Update leaves the stored hash untouched when user.Password is empty.
	Update(ctx context.Context, db *gorm.DB, user *User) (int64, error)
	SetEstado(ctx context.Context, db *gorm.DB, id snowflake.ID, estado string) (int64, error)
}
