package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/freight/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

const selectFreights = `SELECT f.id, f.fecha, f.transportista_id, t.nombre AS transportista_nombre, f.guia_remitente,
	f.guia_transportista, f.detalle_carga, f.valor_flete, f.adelanto, f.pago, f.observacion, f.fecha_cancelacion, f.estado
	FROM fletes f
	LEFT JOIN transportistas t ON t.id = f.transportista_id`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, freight *domain.Freight) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO fletes (id, fecha, transportista_id, guia_remitente, guia_transportista, detalle_carga,
		 valor_flete, adelanto, pago, observacion, fecha_cancelacion, estado)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		freight.ID,
		freight.Fecha,
		freight.TransportistaID,
		freight.GuiaRemitente,
		freight.GuiaTransportista,
		freight.DetalleCarga,
		freight.ValorFlete,
		freight.Adelanto,
		freight.Pago,
		freight.Observacion,
		freight.FechaCancelacion,
		freight.Estado,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Freight, error) {
	var freight domain.Freight
	err := db.WithContext(ctx).Raw(selectFreights+` WHERE f.id = ?`, id).Scan(&freight).Error
	if err != nil {
		return nil, err
	}
	if freight.ID == 0 {
		return nil, nil
	}
	return &freight, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFreightFilter) ([]domain.Freight, error) {
	sql, args := query.New(selectFreights).
		Contains(filter.Q, "f.guia_remitente", "f.guia_transportista", "f.detalle_carga").
		Eq("f.estado", filter.Estado).
		Eq("f.transportista_id", filter.TransportistaID).
		From("f.fecha", filter.Desde).
		Until("f.fecha", filter.Hasta).
		OrderBy("f.fecha DESC", "f.id DESC").
		Build()

	freights := []domain.Freight{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&freights).Error; err != nil {
		return nil, err
	}
	return freights, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, freight *domain.Freight) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE fletes SET fecha = ?, transportista_id = ?, guia_remitente = ?, guia_transportista = ?,
		 detalle_carga = ?, valor_flete = ?, adelanto = ?, pago = ?, observacion = ?, fecha_cancelacion = ?,
		 estado = ? WHERE id = ?`,
		freight.Fecha,
		freight.TransportistaID,
		freight.GuiaRemitente,
		freight.GuiaTransportista,
		freight.DetalleCarga,
		freight.ValorFlete,
		freight.Adelanto,
		freight.Pago,
		freight.Observacion,
		freight.FechaCancelacion,
		freight.Estado,
		freight.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM fletes WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
