package domain

import (
	"context"
	"errors"
)

type ListCarrierRequest struct {
	Q      string
	Estado string
}

type ListCarrierFilter struct {
	Q      string
	Estado string
}

// CarrierRequest carries every writable field; update overwrites all of them.
type CarrierRequest struct {
	Nombre   string
	RUC      *string
	Contacto *string
	Estado   string
}

type UpdateCarrierRequest struct {
	ID string
	CarrierRequest
}

type Service interface {
	List(context.Context, ListCarrierRequest) ([]Carrier, error)
	GetByID(ctx context.Context, id string) (Carrier, error)
	Create(context.Context, CarrierRequest) (Carrier, error)
	Update(context.Context, UpdateCarrierRequest) (Carrier, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidNombre = errors.New("invalid_nombre")
	ErrNotFound      = errors.New("not_found")
	ErrHasDependents = errors.New("has_dependents")
)
