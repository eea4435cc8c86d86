package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/carrier/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, carrier *domain.Carrier) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO transportistas (id, nombre, ruc, contacto, estado) VALUES (?, ?, ?, ?, ?)`,
		carrier.ID,
		carrier.Nombre,
		carrier.RUC,
		carrier.Contacto,
		carrier.Estado,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Carrier, error) {
	var carrier domain.Carrier
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, ruc, contacto, estado FROM transportistas WHERE id = ?`,
		id,
	).Scan(&carrier).Error
	if err != nil {
		return nil, err
	}
	if carrier.ID == 0 {
		return nil, nil
	}
	return &carrier, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCarrierFilter) ([]domain.Carrier, error) {
	sql, args := query.New(`SELECT id, nombre, ruc, contacto, estado FROM transportistas`).
		Contains(filter.Q, "nombre", "ruc", "contacto").
		Eq("estado", filter.Estado).
		OrderBy("nombre ASC", "id ASC").
		Build()

	carriers := []domain.Carrier{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, carrier *domain.Carrier) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE transportistas SET nombre = ?, ruc = ?, contacto = ?, estado = ? WHERE id = ?`,
		carrier.Nombre,
		carrier.RUC,
		carrier.Contacto,
		carrier.Estado,
		carrier.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM transportistas WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
