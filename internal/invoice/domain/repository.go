package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListInvoiceFilter) ([]Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) (int64, error)

	InsertItem(ctx context.Context, db *gorm.DB, item *Item) error
	FindItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Item, error)
	ListItems(ctx context.Context, db *gorm.DB, facturaID snowflake.ID) ([]Item, error)
	UpdateItem(ctx context.Context, db *gorm.DB, item *Item) (int64, error)
	DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	InsertCollection(ctx context.Context, db *gorm.DB, collection *Collection) error
	ListCollections(ctx context.Context, db *gorm.DB, facturaID snowflake.ID) ([]Collection, error)
}
