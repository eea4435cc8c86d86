package domain

import "github.com/bwmarrin/snowflake"

type Carrier struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Nombre   string       `gorm:"column:nombre;not null" json:"nombre"`
	RUC      *string      `gorm:"column:ruc" json:"ruc"`
	Contacto *string      `gorm:"column:contacto" json:"contacto"`
	Estado   string       `gorm:"column:estado;not null" json:"estado"`
}

func (Carrier) TableName() string { return "transportistas" }
