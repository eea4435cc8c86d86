package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/invoice/domain"
	"github.com/maderas/backend/internal/observability/metrics"
	"github.com/maderas/backend/pkg/db"
	"github.com/maderas/backend/pkg/db/composite"
	"github.com/maderas/backend/pkg/input"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Config    config.Config
	Defaults  *config.DefaultsHolder
	TxMetrics *metrics.TxMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	defaults *config.DefaultsHolder
	writer   *composite.Writer
}

func New(p Params) domain.Service {
	log := p.Log.Named("invoice.service")
	return &Service{
		db:       p.DB,
		log:      log,
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
		writer: composite.New(p.DB, "facturas", "id",
			[]composite.Dependent{
				{Table: "factura_items", Column: "factura_id"},
				{Table: "cobranzas", Column: "factura_id"},
			},
			composite.WithTimeout(p.Config.DBAcquireTimeout),
			composite.WithObserver(p.TxMetrics),
			composite.WithLogger(log),
		),
	}
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.Invoice, error) {
	filter := domain.ListInvoiceFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
		Desde:  req.Desde,
		Hasta:  req.Hasta,
	}
	if strings.TrimSpace(req.ClienteID) != "" {
		id, ok := input.ID(req.ClienteID)
		if !ok {
			return nil, domain.ErrInvalidCliente
		}
		filter.ClienteID = id
	}

	invoices, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, db.Classify(err)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := s.parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, db.Classify(err)
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, db.Classify(err)
	}
	invoice.Items = items
	return *invoice, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	invoice, err := s.build(req.InvoiceRequest)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.ID = s.genID.Generate()

	err = s.writer.Create(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		invoice.Items = make([]domain.Item, 0, len(req.Items))
		for _, r := range req.Items {
			item, err := buildItem(r)
			if err != nil {
				return err
			}
			item.ID = s.genID.Generate()
			item.FacturaID = invoice.ID
			if err := s.repo.InsertItem(ctx, tx, &item); err != nil {
				return err
			}
			invoice.Items = append(invoice.Items, item)
		}
		return nil
	})
	if err != nil {
		return domain.Invoice{}, s.mapWriteError(err)
	}

	s.log.Debug("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int("items", len(invoice.Items)),
	)
	return invoice, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice, err := s.build(req.InvoiceRequest)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.ID = id

	affected, err := s.repo.Update(ctx, s.db, &invoice)
	if err != nil {
		return domain.Invoice{}, s.mapWriteError(err)
	}
	if affected == 0 {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, invoiceID); err != nil {
		if errors.Is(err, composite.ErrHeaderNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, facturaID string) ([]domain.Item, error) {
	id, err := s.parseID(facturaID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, s.db, id)
	if err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func (s *Service) UpdateItem(ctx context.Context, req domain.UpdateItemRequest) (domain.Item, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Item{}, err
	}
	item, err := buildItem(req.ItemRequest)
	if err != nil {
		return domain.Item{}, err
	}
	item.ID = id

	affected, err := s.repo.UpdateItem(ctx, s.db, &item)
	if err != nil {
		return domain.Item{}, db.Classify(err)
	}
	if affected == 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}

	stored, err := s.repo.FindItem(ctx, s.db, id)
	if err != nil {
		return domain.Item{}, db.Classify(err)
	}
	if stored == nil {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return *stored, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	itemID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.DeleteItem(ctx, s.db, itemID)
	if err != nil {
		return db.Classify(err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (s *Service) ListCollections(ctx context.Context, facturaID string) ([]domain.Collection, error) {
	id, err := s.parseID(facturaID)
	if err != nil {
		return nil, err
	}

	collections, err := s.repo.ListCollections(ctx, s.db, id)
	if err != nil {
		return nil, db.Classify(err)
	}
	return collections, nil
}

func (s *Service) AddCollection(ctx context.Context, req domain.CollectionRequest) (domain.Collection, error) {
	facturaID, ok := input.ID(req.FacturaID)
	if !ok {
		return domain.Collection{}, domain.ErrInvalidFactura
	}
	fecha, err := input.Date(req.Fecha)
	if err != nil {
		return domain.Collection{}, domain.ErrInvalidFecha
	}
	anticipo := input.FloatOr(req.Anticipo, 0)
	entregado := input.FloatOr(req.Entregado, 0)
	if anticipo < 0 || entregado < 0 {
		return domain.Collection{}, domain.ErrInvalidCollection
	}

	collection := domain.Collection{
		ID:        s.genID.Generate(),
		FacturaID: facturaID,
		Fecha:     fecha,
		Anticipo:  anticipo,
		Entregado: entregado,
	}
	if err := s.repo.InsertCollection(ctx, s.db, &collection); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.Collection{}, domain.ErrInvalidFactura
		}
		return domain.Collection{}, db.Classify(err)
	}
	return collection, nil
}

func (s *Service) build(req domain.InvoiceRequest) (domain.Invoice, error) {
	clienteID, ok := input.ID(req.ClienteID)
	if !ok {
		return domain.Invoice{}, domain.ErrInvalidCliente
	}
	fecha, err := input.Date(req.Fecha)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidFecha
	}
	nro := strings.TrimSpace(req.FacturaNro)
	if nro == "" {
		return domain.Invoice{}, domain.ErrInvalidFacturaNro
	}

	defaults := s.defaults.Get()
	igv := input.FloatOr(req.IGVPct, defaults.IGVPct)
	detraccion := input.FloatOr(req.DetraccionPct, defaults.DetraccionPct)
	if !validRate(igv) || !validRate(detraccion) {
		return domain.Invoice{}, domain.ErrInvalidRate
	}

	return domain.Invoice{
		Fecha:         fecha,
		ClienteID:     clienteID,
		FacturaNro:    nro,
		GuiaNro:       input.OptionalString(req.GuiaNro),
		Descripcion:   input.OptionalString(req.Descripcion),
		IGVPct:        igv,
		DetraccionPct: detraccion,
		Estado:        input.StringOr(req.Estado, defaults.InvoiceStatus),
	}, nil
}

func buildItem(req domain.ItemRequest) (domain.Item, error) {
	producto := strings.TrimSpace(req.Producto)
	if producto == "" || req.Cantidad == nil || req.PrecioUnit == nil {
		return domain.Item{}, domain.ErrInvalidItem
	}
	if *req.Cantidad < 0 || *req.PrecioUnit < 0 {
		return domain.Item{}, domain.ErrInvalidItem
	}

	return domain.Item{
		Producto:   producto,
		Cantidad:   *req.Cantidad,
		PrecioUnit: *req.PrecioUnit,
	}, nil
}

// mapWriteError turns a rejected client reference into a validation error.
func (s *Service) mapWriteError(err error) error {
	if db.IsForeignKeyErr(err) {
		return domain.ErrInvalidCliente
	}
	return db.Classify(err)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, ok := input.ID(value)
	if !ok {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func validRate(v float64) bool {
	return v >= 0 && v < 1
}
