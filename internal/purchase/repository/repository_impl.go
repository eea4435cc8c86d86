package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/purchase/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

const selectPurchases = `SELECT c.id, c.proveedor_id, p.nombre AS proveedor_nombre, c.fecha, c.tipo_producto,
	c.cantidad_pt, c.precio_pt, c.anticipo, c.estado
	FROM compras c
	LEFT JOIN proveedores p ON p.id = c.proveedor_id`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, purchase *domain.Purchase) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO compras (id, proveedor_id, fecha, tipo_producto, cantidad_pt, precio_pt, anticipo, estado)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		purchase.ID,
		purchase.ProveedorID,
		purchase.Fecha,
		purchase.TipoProducto,
		purchase.CantidadPT,
		purchase.PrecioPT,
		purchase.Anticipo,
		purchase.Estado,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := db.WithContext(ctx).Raw(selectPurchases+` WHERE c.id = ?`, id).Scan(&purchase).Error
	if err != nil {
		return nil, err
	}
	if purchase.ID == 0 {
		return nil, nil
	}
	return &purchase, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPurchaseFilter) ([]domain.Purchase, error) {
	sql, args := query.New(selectPurchases).
		Contains(filter.Q, "c.tipo_producto").
		Eq("c.estado", filter.Estado).
		Eq("c.proveedor_id", filter.ProveedorID).
		From("c.fecha", filter.Desde).
		Until("c.fecha", filter.Hasta).
		OrderBy("c.fecha DESC", "c.id DESC").
		Build()

	purchases := []domain.Purchase{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, purchase *domain.Purchase) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE compras SET proveedor_id = ?, fecha = ?, tipo_producto = ?, cantidad_pt = ?, precio_pt = ?,
		 anticipo = ?, estado = ? WHERE id = ?`,
		purchase.ProveedorID,
		purchase.Fecha,
		purchase.TipoProducto,
		purchase.CantidadPT,
		purchase.PrecioPT,
		purchase.Anticipo,
		purchase.Estado,
		purchase.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertExpense(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO compras_gastos (id, compra_id, concepto, monto, fecha) VALUES (?, ?, ?, ?, ?)`,
		expense.ID,
		expense.CompraID,
		expense.Concepto,
		expense.Monto,
		expense.Fecha,
	).Error
}

func (r *repo) ListExpenses(ctx context.Context, db *gorm.DB, compraID snowflake.ID) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	err := db.WithContext(ctx).Raw(
		`SELECT id, compra_id, concepto, monto, fecha FROM compras_gastos WHERE compra_id = ? ORDER BY id ASC`,
		compraID,
	).Scan(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}
