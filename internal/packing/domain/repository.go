package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, packing *Packing) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Packing, error)
	List(ctx context.Context, db *gorm.DB, filter ListPackingFilter) ([]Packing, error)
	Update(ctx context.Context, db *gorm.DB, packing *Packing) (int64, error)

	InsertItem(ctx context.Context, db *gorm.DB, item *Item) error
	FindItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Item, error)
	ListItems(ctx context.Context, db *gorm.DB, packingID snowflake.ID) ([]Item, error)
	UpdateItem(ctx context.Context, db *gorm.DB, item *Item) (int64, error)
	DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
