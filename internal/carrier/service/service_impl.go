package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/carrier/domain"
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
		log:      p.Log.Named("carrier.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListCarrierRequest) ([]domain.Carrier, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListCarrierFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
	})
	if err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Carrier, error) {
	carrierID, err := s.parseID(id)
	if err != nil {
		return domain.Carrier{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, carrierID)
	if err != nil {
		return domain.Carrier{}, db.Classify(err)
	}
	if item == nil {
		return domain.Carrier{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CarrierRequest) (domain.Carrier, error) {
	carrier, err := s.build(req)
	if err != nil {
		return domain.Carrier{}, err
	}
	carrier.ID = s.genID.Generate()

	if err := s.repo.Insert(ctx, s.db, &carrier); err != nil {
		return domain.Carrier{}, db.Classify(err)
	}
	return carrier, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCarrierRequest) (domain.Carrier, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Carrier{}, err
	}
	carrier, err := s.build(req.CarrierRequest)
	if err != nil {
		return domain.Carrier{}, err
	}
	carrier.ID = id

	affected, err := s.repo.Update(ctx, s.db, &carrier)
	if err != nil {
		return domain.Carrier{}, db.Classify(err)
	}
	if affected == 0 {
		return domain.Carrier{}, domain.ErrNotFound
	}
	return carrier, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	carrierID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, carrierID)
	if err != nil {
		if db.IsForeignKeyErr(err) {
			s.log.Info("carrier delete blocked by references", zap.String("carrier_id", carrierID.String()))
			return domain.ErrHasDependents
		}
		return db.Classify(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) build(req domain.CarrierRequest) (domain.Carrier, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.Carrier{}, domain.ErrInvalidNombre
	}

	return domain.Carrier{
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
