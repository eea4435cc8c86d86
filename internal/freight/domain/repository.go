package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, freight *Freight) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Freight, error)
	List(ctx context.Context, db *gorm.DB, filter ListFreightFilter) ([]Freight, error)
	Update(ctx context.Context, db *gorm.DB, freight *Freight) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
