package domain

import "github.com/bwmarrin/snowflake"

type Client struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	RazonSocial string       `gorm:"column:razon_social;not null" json:"razon_social"`
	RUC         *string      `gorm:"column:ruc" json:"ruc"`
	Contacto    *string      `gorm:"column:contacto" json:"contacto"`
	Estado      string       `gorm:"column:estado;not null" json:"estado"`
}

func (Client) TableName() string { return "clientes" }
