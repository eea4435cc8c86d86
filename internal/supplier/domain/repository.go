package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Supplier, error)
	List(ctx context.Context, db *gorm.DB, filter ListSupplierFilter) ([]Supplier, error)
	Update(ctx context.Context, db *gorm.DB, supplier *Supplier) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
