package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListFreightRequest struct {
	Q               string
	Estado          string
	TransportistaID string
	Desde           *time.Time
	Hasta           *time.Time
}

type ListFreightFilter struct {
	Q               string
	Estado          string
	TransportistaID snowflake.ID
	Desde           *time.Time
	Hasta           *time.Time
}

type FreightRequest struct {
	TransportistaID   string
	Fecha             string
	GuiaRemitente     *string
	GuiaTransportista *string
	DetalleCarga      *string
	ValorFlete        *float64
	Adelanto          *float64
	Pago              *float64
	Observacion       *string
	FechaCancelacion  *string
	Estado            string
}

type UpdateFreightRequest struct {
	ID string
	FreightRequest
}

type Service interface {
	List(context.Context, ListFreightRequest) ([]Freight, error)
	GetByID(ctx context.Context, id string) (Freight, error)
	Create(context.Context, FreightRequest) (Freight, error)
	Update(context.Context, UpdateFreightRequest) (Freight, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidTransportista = errors.New("invalid_transportista")
	ErrInvalidFecha         = errors.New("invalid_fecha")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrNotFound             = errors.New("not_found")
)
