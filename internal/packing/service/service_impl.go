package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/observability/metrics"
	"github.com/maderas/backend/internal/packing/domain"
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
	TxMetrics *metrics.TxMetrics `optional:"true"`
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	writer *composite.Writer
}

func New(p Params) domain.Service {
	log := p.Log.Named("packing.service")
	return &Service{
		db:    p.DB,
		log:   log,
		genID: p.GenID,
		repo:  p.Repo,
		writer: composite.New(p.DB, "packing", "id",
			[]composite.Dependent{{Table: "packing_items", Column: "packing_id"}},
			composite.WithTimeout(p.Config.DBAcquireTimeout),
			composite.WithObserver(p.TxMetrics),
			composite.WithLogger(log),
		),
	}
}

func (s *Service) List(ctx context.Context, req domain.ListPackingRequest) ([]domain.Packing, error) {
	filter := domain.ListPackingFilter{
		Q:     strings.TrimSpace(req.Q),
		Desde: req.Desde,
		Hasta: req.Hasta,
	}
	if strings.TrimSpace(req.ClienteID) != "" {
		id, ok := input.ID(req.ClienteID)
		if !ok {
			return nil, domain.ErrInvalidCliente
		}
		filter.ClienteID = id
	}

	packings, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, db.Classify(err)
	}
	return packings, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Packing, error) {
	packingID, err := s.parseID(id)
	if err != nil {
		return domain.Packing{}, err
	}

	packing, err := s.repo.FindByID(ctx, s.db, packingID)
	if err != nil {
		return domain.Packing{}, db.Classify(err)
	}
	if packing == nil {
		return domain.Packing{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, packingID)
	if err != nil {
		return domain.Packing{}, db.Classify(err)
	}
	packing.Items = items
	return *packing, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreatePackingRequest) (domain.Packing, error) {
	packing, err := build(req.PackingRequest)
	if err != nil {
		return domain.Packing{}, err
	}
	packing.ID = s.genID.Generate()

	err = s.writer.Create(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &packing); err != nil {
			return err
		}
		packing.Items = make([]domain.Item, 0, len(req.Items))
		for _, r := range req.Items {
			item, err := buildItem(r)
			if err != nil {
				return err
			}
			item.ID = s.genID.Generate()
			item.PackingID = packing.ID
			if err := s.repo.InsertItem(ctx, tx, &item); err != nil {
				return err
			}
			packing.Items = append(packing.Items, item)
		}
		return nil
	})
	if err != nil {
		return domain.Packing{}, mapWriteError(err)
	}

	s.log.Debug("packing created",
		zap.String("packing_id", packing.ID.String()),
		zap.Int("items", len(packing.Items)),
		zap.Float64("volumen_pt", packing.TotalVolumen()),
	)
	return packing, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePackingRequest) (domain.Packing, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Packing{}, err
	}
	packing, err := build(req.PackingRequest)
	if err != nil {
		return domain.Packing{}, err
	}
	packing.ID = id

	affected, err := s.repo.Update(ctx, s.db, &packing)
	if err != nil {
		return domain.Packing{}, mapWriteError(err)
	}
	if affected == 0 {
		return domain.Packing{}, domain.ErrNotFound
	}
	return packing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	packingID, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, packingID); err != nil {
		if errors.Is(err, composite.ErrHeaderNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, packingID string) ([]domain.Item, error) {
	id, err := s.parseID(packingID)
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

func build(req domain.PackingRequest) (domain.Packing, error) {
	clienteID, ok := input.ID(req.ClienteID)
	if !ok {
		return domain.Packing{}, domain.ErrInvalidCliente
	}
	fecha, err := input.Date(req.Fecha)
	if err != nil {
		return domain.Packing{}, domain.ErrInvalidFecha
	}

	return domain.Packing{
		Fecha:         fecha,
		ClienteID:     clienteID,
		Especie:       input.OptionalString(req.Especie),
		TipoMadera:    input.OptionalString(req.TipoMadera),
		Observaciones: input.OptionalString(req.Observaciones),
	}, nil
}

func buildItem(req domain.ItemRequest) (domain.Item, error) {
	if req.CantidadPiezas == nil || req.E == nil || req.A == nil || req.L == nil {
		return domain.Item{}, domain.ErrInvalidItem
	}
	if *req.CantidadPiezas < 0 || *req.E < 0 || *req.A < 0 || *req.L < 0 {
		return domain.Item{}, domain.ErrInvalidItem
	}

	volumen := domain.BoardFeet(*req.CantidadPiezas, *req.E, *req.A, *req.L)
	if req.VolumenPT != nil {
		if *req.VolumenPT < 0 {
			return domain.Item{}, domain.ErrInvalidItem
		}
		volumen = *req.VolumenPT
	}

	return domain.Item{
		CantidadPiezas: *req.CantidadPiezas,
		E:              *req.E,
		A:              *req.A,
		L:              *req.L,
		VolumenPT:      volumen,
		Categoria:      input.OptionalString(req.Categoria),
	}, nil
}

// mapWriteError turns a rejected client reference into a validation error.
func mapWriteError(err error) error {
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
