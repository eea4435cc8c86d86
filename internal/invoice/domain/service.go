package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListInvoiceRequest struct {
	Q         string
	Estado    string
	ClienteID string
	Desde     *time.Time
	Hasta     *time.Time
}

type ListInvoiceFilter struct {
	Q         string
	Estado    string
	ClienteID snowflake.ID
	Desde     *time.Time
	Hasta     *time.Time
}

type InvoiceRequest struct {
	ClienteID     string
	Fecha         string
	FacturaNro    string
	GuiaNro       *string
	Descripcion   *string
	IGVPct        *float64
	DetraccionPct *float64
	Estado        string
}

type CreateInvoiceRequest struct {
	InvoiceRequest
	Items []ItemRequest
}

type UpdateInvoiceRequest struct {
	ID string
	InvoiceRequest
}

type ItemRequest struct {
	Producto   string
	Cantidad   *float64
	PrecioUnit *float64
}

type UpdateItemRequest struct {
	ID string
	ItemRequest
}

type CollectionRequest struct {
	FacturaID string
	Fecha     string
	Anticipo  *float64
	Entregado *float64
}

type Service interface {
	List(context.Context, ListInvoiceRequest) ([]Invoice, error)
	// GetByID returns the header with its totals and items.
	GetByID(ctx context.Context, id string) (Invoice, error)
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	// Update overwrites the header only. Items are maintained one by one.
	Update(context.Context, UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, facturaID string) ([]Item, error)
	UpdateItem(context.Context, UpdateItemRequest) (Item, error)
	DeleteItem(ctx context.Context, id string) error

	ListCollections(ctx context.Context, facturaID string) ([]Collection, error)
	AddCollection(context.Context, CollectionRequest) (Collection, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidCliente    = errors.New("invalid_cliente")
	ErrInvalidFecha      = errors.New("invalid_fecha")
	ErrInvalidFacturaNro = errors.New("invalid_factura_nro")
	ErrInvalidRate       = errors.New("invalid_rate")
	ErrInvalidItem       = errors.New("invalid_item")
	ErrInvalidCollection = errors.New("invalid_collection")
	ErrInvalidFactura    = errors.New("invalid_factura")
	ErrNotFound          = errors.New("not_found")
	ErrItemNotFound      = errors.New("item_not_found")
)
