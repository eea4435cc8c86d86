package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/packing/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

const (
	selectPackings = `SELECT p.id, p.fecha, p.cliente_id, c.razon_social AS cliente_nombre, p.especie, p.tipo_madera,
	p.observaciones
	FROM packing p
	LEFT JOIN clientes c ON c.id = p.cliente_id`

	selectItems = `SELECT id, packing_id, cantidad_piezas, e, a, l, COALESCE(volumen_pt, 0) AS volumen_pt, categoria
	FROM packing_items`
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, packing *domain.Packing) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO packing (id, fecha, cliente_id, especie, tipo_madera, observaciones) VALUES (?, ?, ?, ?, ?, ?)`,
		packing.ID,
		packing.Fecha,
		packing.ClienteID,
		packing.Especie,
		packing.TipoMadera,
		packing.Observaciones,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Packing, error) {
	var packing domain.Packing
	err := db.WithContext(ctx).Raw(selectPackings+` WHERE p.id = ?`, id).Scan(&packing).Error
	if err != nil {
		return nil, err
	}
	if packing.ID == 0 {
		return nil, nil
	}
	return &packing, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPackingFilter) ([]domain.Packing, error) {
	sql, args := query.New(selectPackings).
		Contains(filter.Q, "p.especie", "p.tipo_madera", "p.observaciones").
		Eq("p.cliente_id", filter.ClienteID).
		From("p.fecha", filter.Desde).
		Until("p.fecha", filter.Hasta).
		OrderBy("p.fecha DESC", "p.id DESC").
		Build()

	packings := []domain.Packing{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&packings).Error; err != nil {
		return nil, err
	}
	return packings, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, packing *domain.Packing) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE packing SET fecha = ?, cliente_id = ?, especie = ?, tipo_madera = ?, observaciones = ? WHERE id = ?`,
		packing.Fecha,
		packing.ClienteID,
		packing.Especie,
		packing.TipoMadera,
		packing.Observaciones,
		packing.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO packing_items (id, packing_id, cantidad_piezas, e, a, l, volumen_pt, categoria)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.PackingID,
		item.CantidadPiezas,
		item.E,
		item.A,
		item.L,
		item.VolumenPT,
		item.Categoria,
	).Error
}

func (r *repo) FindItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Item, error) {
	var item domain.Item
	if err := db.WithContext(ctx).Raw(selectItems+` WHERE id = ?`, id).Scan(&item).Error; err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, packingID snowflake.ID) ([]domain.Item, error) {
	items := []domain.Item{}
	err := db.WithContext(ctx).Raw(selectItems+` WHERE packing_id = ? ORDER BY id ASC`, packingID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.Item) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE packing_items SET cantidad_piezas = ?, e = ?, a = ?, l = ?, volumen_pt = ?, categoria = ? WHERE id = ?`,
		item.CantidadPiezas,
		item.E,
		item.A,
		item.L,
		item.VolumenPT,
		item.Categoria,
		item.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM packing_items WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
