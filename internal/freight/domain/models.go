package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Freight is a haulage job handled by a carrier.
type Freight struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	Fecha               time.Time    `gorm:"column:fecha;type:date;not null" json:"fecha"`
	TransportistaID     snowflake.ID `gorm:"column:transportista_id;not null" json:"transportista_id"`
	TransportistaNombre *string      `gorm:"->;column:transportista_nombre" json:"transportista_nombre,omitempty"`
	GuiaRemitente       *string      `gorm:"column:guia_remitente" json:"guia_remitente"`
	GuiaTransportista   *string      `gorm:"column:guia_transportista" json:"guia_transportista"`
	DetalleCarga        *string      `gorm:"column:detalle_carga" json:"detalle_carga"`
	ValorFlete          *float64     `gorm:"column:valor_flete" json:"valor_flete"`
	Adelanto            float64      `gorm:"column:adelanto;not null" json:"adelanto"`
	Pago                float64      `gorm:"column:pago;not null" json:"pago"`
	Observacion         *string      `gorm:"column:observacion" json:"observacion"`
	FechaCancelacion    *time.Time   `gorm:"column:fecha_cancelacion;type:date" json:"fecha_cancelacion"`
	Estado              string       `gorm:"column:estado;not null" json:"estado"`
}

func (Freight) TableName() string { return "fletes" }
