package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice is a sales invoice header. Amount fields come from the
// v_facturas_totales view and are never written.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Fecha         time.Time    `gorm:"column:fecha;type:date;not null" json:"fecha"`
	ClienteID     snowflake.ID `gorm:"column:cliente_id;not null" json:"cliente_id"`
	ClienteNombre *string      `gorm:"->;column:cliente_nombre" json:"cliente_nombre,omitempty"`
	FacturaNro    string       `gorm:"column:factura_nro;not null" json:"factura_nro"`
	GuiaNro       *string      `gorm:"column:guia_nro" json:"guia_nro"`
	Descripcion   *string      `gorm:"column:descripcion" json:"descripcion"`
	IGVPct        float64      `gorm:"column:igv_pct;not null" json:"igv_pct"`
	DetraccionPct float64      `gorm:"column:detraccion_pct;not null" json:"detraccion_pct"`
	Estado        string       `gorm:"column:estado;not null" json:"estado"`

	Total       float64 `gorm:"->;column:total" json:"total"`
	IGV         float64 `gorm:"->;column:igv" json:"igv"`
	TotalConIGV float64 `gorm:"->;column:total_con_igv" json:"total_con_igv"`
	Detraccion  float64 `gorm:"->;column:detraccion" json:"detraccion"`
	Cobrado     float64 `gorm:"->;column:cobrado" json:"cobrado"`
	Saldo       float64 `gorm:"->;column:saldo" json:"saldo"`

	Items []Item `gorm:"-" json:"items,omitempty"`
}

func (Invoice) TableName() string { return "facturas" }

type Item struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	FacturaID  snowflake.ID `gorm:"column:factura_id;not null" json:"factura_id"`
	Producto   string       `gorm:"column:producto;not null" json:"producto"`
	Cantidad   float64      `gorm:"column:cantidad;not null" json:"cantidad"`
	PrecioUnit float64      `gorm:"column:precio_unit;not null" json:"precio_unit"`
}

func (Item) TableName() string { return "factura_items" }

func (i Item) Subtotal() float64 {
	return i.Cantidad * i.PrecioUnit
}

// Collection is a payment received against an invoice.
type Collection struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	FacturaID snowflake.ID `gorm:"column:factura_id;not null" json:"factura_id"`
	Fecha     time.Time    `gorm:"column:fecha;type:date;not null" json:"fecha"`
	Anticipo  float64      `gorm:"column:anticipo;not null" json:"anticipo"`
	Entregado float64      `gorm:"column:entregado;not null" json:"entregado"`
}

func (Collection) TableName() string { return "cobranzas" }
