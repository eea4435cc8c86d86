package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/client/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clientes (id, razon_social, ruc, contacto, estado) VALUES (?, ?, ?, ?, ?)`,
		client.ID,
		client.RazonSocial,
		client.RUC,
		client.Contacto,
		client.Estado,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, razon_social, ruc, contacto, estado FROM clientes WHERE id = ?`,
		id,
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListClientFilter) ([]domain.Client, error) {
	sql, args := query.New(`SELECT id, razon_social, ruc, contacto, estado FROM clientes`).
		Contains(filter.Q, "razon_social", "ruc", "contacto").
		Eq("estado", filter.Estado).
		OrderBy("razon_social ASC", "id ASC").
		Build()

	clients := []domain.Client{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE clientes SET razon_social = ?, ruc = ?, contacto = ?, estado = ? WHERE id = ?`,
		client.RazonSocial,
		client.RUC,
		client.Contacto,
		client.Estado,
		client.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM clientes WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
