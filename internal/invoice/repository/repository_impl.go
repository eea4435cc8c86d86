package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/invoice/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

const selectInvoices = `SELECT f.id, f.fecha, f.cliente_id, c.razon_social AS cliente_nombre, f.factura_nro, f.guia_nro,
	f.descripcion, f.igv_pct, f.detraccion_pct, f.estado,
	COALESCE(t.total, 0) AS total, COALESCE(t.igv, 0) AS igv, COALESCE(t.total_con_igv, 0) AS total_con_igv,
	COALESCE(t.detraccion, 0) AS detraccion, COALESCE(t.cobrado, 0) AS cobrado, COALESCE(t.saldo, 0) AS saldo
	FROM facturas f
	LEFT JOIN clientes c ON c.id = f.cliente_id
	LEFT JOIN v_facturas_totales t ON t.factura_id = f.id`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO facturas (id, fecha, cliente_id, factura_nro, guia_nro, descripcion, igv_pct, detraccion_pct, estado)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.Fecha,
		invoice.ClienteID,
		invoice.FacturaNro,
		invoice.GuiaNro,
		invoice.Descripcion,
		invoice.IGVPct,
		invoice.DetraccionPct,
		invoice.Estado,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(selectInvoices+` WHERE f.id = ?`, id).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceFilter) ([]domain.Invoice, error) {
	sql, args := query.New(selectInvoices).
		Contains(filter.Q, "f.factura_nro", "f.guia_nro").
		Eq("f.estado", filter.Estado).
		Eq("f.cliente_id", filter.ClienteID).
		From("f.fecha", filter.Desde).
		Until("f.fecha", filter.Hasta).
		OrderBy("f.fecha DESC", "f.id DESC").
		Build()

	invoices := []domain.Invoice{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE facturas SET fecha = ?, cliente_id = ?, factura_nro = ?, guia_nro = ?, descripcion = ?,
		 igv_pct = ?, detraccion_pct = ?, estado = ? WHERE id = ?`,
		invoice.Fecha,
		invoice.ClienteID,
		invoice.FacturaNro,
		invoice.GuiaNro,
		invoice.Descripcion,
		invoice.IGVPct,
		invoice.DetraccionPct,
		invoice.Estado,
		invoice.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO factura_items (id, factura_id, producto, cantidad, precio_unit) VALUES (?, ?, ?, ?, ?)`,
		item.ID,
		item.FacturaID,
		item.Producto,
		item.Cantidad,
		item.PrecioUnit,
	).Error
}

func (r *repo) FindItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT id, factura_id, producto, cantidad, precio_unit FROM factura_items WHERE id = ?`, id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, facturaID snowflake.ID) ([]domain.Item, error) {
	items := []domain.Item{}
	err := db.WithContext(ctx).Raw(
		`SELECT id, factura_id, producto, cantidad, precio_unit FROM factura_items WHERE factura_id = ? ORDER BY id ASC`,
		facturaID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.Item) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE factura_items SET producto = ?, cantidad = ?, precio_unit = ? WHERE id = ?`,
		item.Producto,
		item.Cantidad,
		item.PrecioUnit,
		item.ID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM factura_items WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertCollection(ctx context.Context, db *gorm.DB, collection *domain.Collection) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO cobranzas (id, factura_id, fecha, anticipo, entregado) VALUES (?, ?, ?, ?, ?)`,
		collection.ID,
		collection.FacturaID,
		collection.Fecha,
		collection.Anticipo,
		collection.Entregado,
	).Error
}

func (r *repo) ListCollections(ctx context.Context, db *gorm.DB, facturaID snowflake.ID) ([]domain.Collection, error) {
	collections := []domain.Collection{}
	err := db.WithContext(ctx).Raw(
		`SELECT id, factura_id, fecha, anticipo, entregado FROM cobranzas WHERE factura_id = ? ORDER BY fecha ASC, id ASC`,
		facturaID,
	).Scan(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}
