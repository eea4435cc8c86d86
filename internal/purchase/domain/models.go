package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Purchase struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	ProveedorID     snowflake.ID `gorm:"column:proveedor_id;not null" json:"proveedor_id"`
	ProveedorNombre *string      `gorm:"->;column:proveedor_nombre" json:"proveedor_nombre,omitempty"`
	Fecha           time.Time    `gorm:"column:fecha;type:date;not null" json:"fecha"`
	TipoProducto    *string      `gorm:"column:tipo_producto" json:"tipo_producto"`
	CantidadPT      *float64     `gorm:"column:cantidad_pt" json:"cantidad_pt"`
	PrecioPT        *float64     `gorm:"column:precio_pt" json:"precio_pt"`
	Anticipo        float64      `gorm:"column:anticipo;not null" json:"anticipo"`
	Estado          string       `gorm:"column:estado;not null" json:"estado"`
}

func (Purchase) TableName() string { return "compras" }

// Expense is an extra cost charged against a purchase.
type Expense struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	CompraID snowflake.ID `gorm:"column:compra_id;not null" json:"compra_id"`
	Concepto string       `gorm:"column:concepto;not null" json:"concepto"`
	Monto    float64      `gorm:"column:monto;not null" json:"monto"`
	Fecha    *time.Time   `gorm:"column:fecha;type:date" json:"fecha"`
}

func (Expense) TableName() string { return "compras_gastos" }
