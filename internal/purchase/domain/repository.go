package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, purchase *Purchase) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Purchase, error)
	List(ctx context.Context, db *gorm.DB, filter ListPurchaseFilter) ([]Purchase, error)
	Update(ctx context.Context, db *gorm.DB, purchase *Purchase) (int64, error)

	InsertExpense(ctx context.Context, db *gorm.DB, expense *Expense) error
	ListExpenses(ctx context.Context, db *gorm.DB, compraID snowflake.ID) ([]Expense, error)
}
