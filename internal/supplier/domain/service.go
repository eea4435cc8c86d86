package domain

import (
	"context"
	"errors"
)

type ListSupplierRequest struct {
	Q      string
	Estado string
}

type ListSupplierFilter struct {
	Q      string
	Estado string
}

// SupplierRequest carries every writable field; update overwrites all of them.
type SupplierRequest struct {
	Nombre   string
	RUC      *string
	Contacto *string
	Estado   string
}

type UpdateSupplierRequest struct {
	ID string
	SupplierRequest
}

type Service interface {
	List(context.Context, ListSupplierRequest) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	Create(context.Context, SupplierRequest) (Supplier, error)
	Update(context.Context, UpdateSupplierRequest) (Supplier, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidNombre = errors.New("invalid_nombre")
	ErrNotFound      = errors.New("not_found")
	ErrHasDependents = errors.New("has_dependents")
)
