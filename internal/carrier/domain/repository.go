package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, carrier *Carrier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Carrier, error)
	List(ctx context.Context, db *gorm.DB, filter ListCarrierFilter) ([]Carrier, error)
	Update(ctx context.Context, db *gorm.DB, carrier *Carrier) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
