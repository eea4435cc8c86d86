package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/supplier/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO proveedores (id, nombre, ruc, contacto, estado) VALUES (?, ?, ?, ?, ?)`,
		supplier.ID,
		supplier.Nombre,
		supplier.RUC,
		supplier.Contacto,
		supplier.Estado,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, ruc, contacto, estado FROM proveedores WHERE id = ?`,
		id,
	).Scan(&supplier).Error
	if err != nil {
		return nil, err
	}
	if supplier.ID == 0 {
		return nil, nil
	}
	return &supplier, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListSupplierFilter) ([]domain.Supplier, error) {
	sql, args := query.New(`SELECT id, nombre, ruc, contacto, estado FROM proveedores`).
		Contains(filter.Q, "nombre", "ruc", "contacto").
		Eq("estado", filter.Estado).
		OrderBy("nombre ASC", "id ASC").
		Build()

	suppliers := []domain.Supplier{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE proveedores SET nombre = ?, ruc = ?, contacto = ?, estado = ? WHERE id = ?`,
		supplier.Nombre,
		supplier.RUC,
		supplier.Contacto,
		supplier.Estado,
		supplier.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM proveedores WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
