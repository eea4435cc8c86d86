package domain

import (
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Packing is a packing list shipped to a client.
type Packing struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Fecha         time.Time    `gorm:"column:fecha;type:date;not null" json:"fecha"`
	ClienteID     snowflake.ID `gorm:"column:cliente_id;not null" json:"cliente_id"`
	ClienteNombre *string      `gorm:"->;column:cliente_nombre" json:"cliente_nombre,omitempty"`
	Especie       *string      `gorm:"column:especie" json:"especie"`
	TipoMadera    *string      `gorm:"column:tipo_madera" json:"tipo_madera"`
	Observaciones *string      `gorm:"column:observaciones" json:"observaciones"`

	Items []Item `gorm:"-" json:"items,omitempty"`
}

func (Packing) TableName() string { return "packing" }

func (p Packing) TotalPiezas() int {
	total := 0
	for _, item := range p.Items {
		total += item.CantidadPiezas
	}
	return total
}

func (p Packing) TotalVolumen() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.VolumenPT
	}
	return Round2(total)
}

// Item is one line of a packing list. E, A and L are thickness and width in
// inches and length in feet.
type Item struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	PackingID      snowflake.ID `gorm:"column:packing_id;not null" json:"packing_id"`
	CantidadPiezas int          `gorm:"column:cantidad_piezas;not null" json:"cantidad_piezas"`
	E              float64      `gorm:"column:e;not null" json:"e"`
	A              float64      `gorm:"column:a;not null" json:"a"`
	L              float64      `gorm:"column:l;not null" json:"l"`
	VolumenPT      float64      `gorm:"column:volumen_pt" json:"volumen_pt"`
	Categoria      *string      `gorm:"column:categoria" json:"categoria"`
}

func (Item) TableName() string { return "packing_items" }

// BoardFeet returns piezas·e·a·l/12 rounded to two decimals.
func BoardFeet(piezas int, e, a, l float64) float64 {
	return Round2(float64(piezas) * e * a * l / 12)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
