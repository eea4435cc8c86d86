package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/supplier/domain"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/pkg/db"
	"github.com/maderas/backend/pkg/input"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Defaults *config.DefaultsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	defaults *config.DefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("supplier.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListSupplierRequest) ([]domain.Supplier, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListSupplierFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
	})
	if err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Supplier, error) {
	supplierID, err := s.parseID(id)
	if err != nil {
		return domain.Supplier{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return domain.Supplier{}, db.Classify(err)
	}
	if item == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.SupplierRequest) (domain.Supplier, error) {
	supplier, err := s.build(req)
	if err != nil {
		return domain.Supplier{}, err
	}
	supplier.ID = s.genID.Generate()

	if err := s.repo.Insert(ctx, s.db, &supplier); err != nil {
		return domain.Supplier{}, db.Classify(err)
	}
	return supplier, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSupplierRequest) (domain.Supplier, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Supplier{}, err
	}
	supplier, err := s.build(req.SupplierRequest)
	if err != nil {
		return domain.Supplier{}, err
	}
	supplier.ID = id

	affected, err := s.repo.Update(ctx, s.db, &supplier)
	if err != nil {
		return domain.Supplier{}, db.Classify(err)
	}
	if affected == 0 {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return supplier, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	supplierID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, supplierID)
	if err != nil {
		if db.IsForeignKeyErr(err) {
			s.log.Info("supplier delete blocked by references", zap.String("supplier_id", supplierID.String()))
			return domain.ErrHasDependents
		}
		return db.Classify(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) build(req domain.SupplierRequest) (domain.Supplier, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.Supplier{}, domain.ErrInvalidNombre
	}

	return domain.Supplier{
		Nombre:   nombre,
		RUC:      input.OptionalString(req.RUC),
		Contacto: input.OptionalString(req.Contacto),
		Estado:   input.StringOr(req.Estado, s.defaults.Get().PartyStatus),
	}, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, ok := input.ID(value)
	if !ok {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
