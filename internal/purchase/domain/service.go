package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListPurchaseRequest struct {
	Q           string
	Estado      string
	ProveedorID string
	Desde       *time.Time
	Hasta       *time.Time
}

type ListPurchaseFilter struct {
	Q           string
	Estado      string
	ProveedorID snowflake.ID
	Desde       *time.Time
	Hasta       *time.Time
}

type PurchaseRequest struct {
	ProveedorID  string
	Fecha        string
	TipoProducto *string
	CantidadPT   *float64
	PrecioPT     *float64
	Anticipo     *float64
	Estado       string
}

type CreatePurchaseRequest struct {
	PurchaseRequest
	Gastos []ExpenseRequest
}

type UpdatePurchaseRequest struct {
	ID string
	PurchaseRequest
}

// ExpenseRequest ignores CompraID when nested in a purchase create.
type ExpenseRequest struct {
	CompraID string
	Concepto string
	Monto    *float64
	Fecha    *string
}

type Service interface {
	List(context.Context, ListPurchaseRequest) ([]Purchase, error)
	GetByID(ctx context.Context, id string) (Purchase, error)
	Create(context.Context, CreatePurchaseRequest) (Purchase, error)
	Update(context.Context, UpdatePurchaseRequest) (Purchase, error)
	Delete(ctx context.Context, id string) error

	ListExpenses(ctx context.Context, compraID string) ([]Expense, error)
	AddExpense(context.Context, ExpenseRequest) (Expense, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidProveedor = errors.New("invalid_proveedor")
	ErrInvalidFecha     = errors.New("invalid_fecha")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidExpense   = errors.New("invalid_expense")
	ErrInvalidCompra    = errors.New("invalid_compra")
	ErrNotFound         = errors.New("not_found")
)
