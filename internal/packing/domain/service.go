package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListPackingRequest struct {
	Q         string
	ClienteID string
	Desde     *time.Time
	Hasta     *time.Time
}

type ListPackingFilter struct {
	Q         string
	ClienteID snowflake.ID
	Desde     *time.Time
	Hasta     *time.Time
}

type PackingRequest struct {
	ClienteID     string
	Fecha         string
	Especie       *string
	TipoMadera    *string
	Observaciones *string
}

type CreatePackingRequest struct {
	PackingRequest
	Items []ItemRequest
}

type UpdatePackingRequest struct {
	ID string
	PackingRequest
}

// ItemRequest computes VolumenPT from the dimensions when it is nil.
type ItemRequest struct {
	CantidadPiezas *int
	E              *float64
	A              *float64
	L              *float64
	VolumenPT      *float64
	Categoria      *string
}

type UpdateItemRequest struct {
	ID string
	ItemRequest
}

type Service interface {
	List(context.Context, ListPackingRequest) ([]Packing, error)
	GetByID(ctx context.Context, id string) (Packing, error)
	Create(context.Context, CreatePackingRequest) (Packing, error)
	Update(context.Context, UpdatePackingRequest) (Packing, error)
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, packingID string) ([]Item, error)
	UpdateItem(context.Context, UpdateItemRequest) (Item, error)
	DeleteItem(ctx context.Context, id string) error
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidCliente = errors.New("invalid_cliente")
	ErrInvalidFecha   = errors.New("invalid_fecha")
	ErrInvalidItem    = errors.New("invalid_item")
	ErrNotFound       = errors.New("not_found")
	ErrItemNotFound   = errors.New("item_not_found")
)
