package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/observability/metrics"
	"github.com/maderas/backend/internal/purchase/domain"
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
	log := p.Log.Named("purchase.service")
	return &Service{
		db:       p.DB,
		log:      log,
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
		writer: composite.New(p.DB, "compras", "id",
			[]composite.Dependent{{Table: "compras_gastos", Column: "compra_id"}},
			composite.WithTimeout(p.Config.DBAcquireTimeout),
			composite.WithObserver(p.TxMetrics),
			composite.WithLogger(log),
		),
	}
}

func (s *Service) List(ctx context.Context, req domain.ListPurchaseRequest) ([]domain.Purchase, error) {
	filter := domain.ListPurchaseFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
		Desde:  req.Desde,
		Hasta:  req.Hasta,
	}
	if strings.TrimSpace(req.ProveedorID) != "" {
		id, ok := input.ID(req.ProveedorID)
		if !ok {
			return nil, domain.ErrInvalidProveedor
		}
		filter.ProveedorID = id
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Purchase, error) {
	purchaseID, err := s.parseID(id)
	if err != nil {
		return domain.Purchase{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, purchaseID)
	if err != nil {
		return domain.Purchase{}, db.Classify(err)
	}
	if item == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreatePurchaseRequest) (domain.Purchase, error) {
	purchase, err := s.build(req.PurchaseRequest)
	if err != nil {
		return domain.Purchase{}, err
	}
	purchase.ID = s.genID.Generate()

	err = s.writer.Create(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &purchase); err != nil {
			return err
		}
		for _, item := range req.Gastos {
			expense, err := s.buildExpense(item)
			if err != nil {
				return err
			}
			expense.ID = s.genID.Generate()
			expense.CompraID = purchase.ID
			if err := s.repo.InsertExpense(ctx, tx, &expense); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Purchase{}, s.mapWriteError(err)
	}

	return purchase, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePurchaseRequest) (domain.Purchase, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Purchase{}, err
	}
	purchase, err := s.build(req.PurchaseRequest)
	if err != nil {
		return domain.Purchase{}, err
	}
	purchase.ID = id

	affected, err := s.repo.Update(ctx, s.db, &purchase)
	if err != nil {
		return domain.Purchase{}, s.mapWriteError(err)
	}
	if affected == 0 {
		return domain.Purchase{}, domain.ErrNotFound
	}
	return purchase, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	purchaseID, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, purchaseID); err != nil {
		if errors.Is(err, composite.ErrHeaderNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListExpenses(ctx context.Context, compraID string) ([]domain.Expense, error) {
	id, err := s.parseID(compraID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListExpenses(ctx, s.db, id)
	if err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func (s *Service) AddExpense(ctx context.Context, req domain.ExpenseRequest) (domain.Expense, error) {
	compraID, ok := input.ID(req.CompraID)
	if !ok {
		return domain.Expense{}, domain.ErrInvalidCompra
	}
	expense, err := s.buildExpense(req)
	if err != nil {
		return domain.Expense{}, err
	}
	expense.ID = s.genID.Generate()
	expense.CompraID = compraID

	if err := s.repo.InsertExpense(ctx, s.db, &expense); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.Expense{}, domain.ErrInvalidCompra
		}
		return domain.Expense{}, db.Classify(err)
	}
	return expense, nil
}

func (s *Service) build(req domain.PurchaseRequest) (domain.Purchase, error) {
	proveedorID, ok := input.ID(req.ProveedorID)
	if !ok {
		return domain.Purchase{}, domain.ErrInvalidProveedor
	}
	fecha, err := input.Date(req.Fecha)
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidFecha
	}
	if isNegative(req.CantidadPT) || isNegative(req.PrecioPT) || isNegative(req.Anticipo) {
		return domain.Purchase{}, domain.ErrInvalidAmount
	}

	return domain.Purchase{
		ProveedorID:  proveedorID,
		Fecha:        fecha,
		TipoProducto: input.OptionalString(req.TipoProducto),
		CantidadPT:   req.CantidadPT,
		PrecioPT:     req.PrecioPT,
		Anticipo:     input.FloatOr(req.Anticipo, 0),
		Estado:       input.StringOr(req.Estado, s.defaults.Get().PurchaseStatus),
	}, nil
}

func (s *Service) buildExpense(req domain.ExpenseRequest) (domain.Expense, error) {
	concepto := strings.TrimSpace(req.Concepto)
	if concepto == "" || req.Monto == nil || *req.Monto < 0 {
		return domain.Expense{}, domain.ErrInvalidExpense
	}
	fecha, err := input.OptionalDate(req.Fecha)
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidFecha
	}

	return domain.Expense{
		Concepto: concepto,
		Monto:    *req.Monto,
		Fecha:    fecha,
	}, nil
}

// mapWriteError turns a rejected supplier reference into a validation error.
func (s *Service) mapWriteError(err error) error {
	if db.IsForeignKeyErr(err) {
		return domain.ErrInvalidProveedor
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

func isNegative(v *float64) bool {
	return v != nil && *v < 0
}
