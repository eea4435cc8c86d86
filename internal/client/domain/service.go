package domain

import (
	"context"
	"errors"
)

type ListClientRequest struct {
	Q      string
	Estado string
}

type ListClientFilter struct {
	Q      string
	Estado string
}

// ClientRequest carries every writable field; update overwrites all of them.
type ClientRequest struct {
	RazonSocial string
	RUC         *string
	Contacto    *string
	Estado      string
}

type UpdateClientRequest struct {
	ID string
	ClientRequest
}

type Service interface {
	List(context.Context, ListClientRequest) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Create(context.Context, ClientRequest) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidRazonSocial = errors.New("invalid_razon_social")
	ErrNotFound           = errors.New("not_found")
	ErrHasDependents      = errors.New("has_dependents")
)
