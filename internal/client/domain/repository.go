package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	List(ctx context.Context, db *gorm.DB, filter ListClientFilter) ([]Client, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
