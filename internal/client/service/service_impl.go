package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/client/domain"
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
		log:      p.Log.Named("client.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) ([]domain.Client, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListClientFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
	})
	if err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	clientID, err := s.parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Client{}, db.Classify(err)
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.ClientRequest) (domain.Client, error) {
	client, err := s.build(req)
	if err != nil {
		return domain.Client{}, err
	}
	client.ID = s.genID.Generate()

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, db.Classify(err)
	}
	return client, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (domain.Client, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}
	client, err := s.build(req.ClientRequest)
	if err != nil {
		return domain.Client{}, err
	}
	client.ID = id

	affected, err := s.repo.Update(ctx, s.db, &client)
	if err != nil {
		return domain.Client{}, db.Classify(err)
	}
	if affected == 0 {
		return domain.Client{}, domain.ErrNotFound
	}
	return client, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, clientID)
	if err != nil {
		if db.IsForeignKeyErr(err) {
			s.log.Info("client delete blocked by references", zap.String("client_id", clientID.String()))
			return domain.ErrHasDependents
		}
		return db.Classify(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) build(req domain.ClientRequest) (domain.Client, error) {
	razonSocial := strings.TrimSpace(req.RazonSocial)
	if razonSocial == "" {
		return domain.Client{}, domain.ErrInvalidRazonSocial
	}

	return domain.Client{
		RazonSocial: razonSocial,
		RUC:         input.OptionalString(req.RUC),
		Contacto:    input.OptionalString(req.Contacto),
		Estado:      input.StringOr(req.Estado, s.defaults.Get().PartyStatus),
	}, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, ok := input.ID(value)
	if !ok {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
