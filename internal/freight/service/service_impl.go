package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/freight/domain"
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
		log:      p.Log.Named("freight.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListFreightRequest) ([]domain.Freight, error) {
	filter := domain.ListFreightFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
		Desde:  req.Desde,
		Hasta:  req.Hasta,
	}
	if strings.TrimSpace(req.TransportistaID) != "" {
		id, ok := input.ID(req.TransportistaID)
		if !ok {
			return nil, domain.ErrInvalidTransportista
		}
		filter.TransportistaID = id
	}

	freights, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, db.Classify(err)
	}
	return freights, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Freight, error) {
	freightID, err := s.parseID(id)
	if err != nil {
		return domain.Freight{}, err
	}

	freight, err := s.repo.FindByID(ctx, s.db, freightID)
	if err != nil {
		return domain.Freight{}, db.Classify(err)
	}
	if freight == nil {
		return domain.Freight{}, domain.ErrNotFound
	}
	return *freight, nil
}

func (s *Service) Create(ctx context.Context, req domain.FreightRequest) (domain.Freight, error) {
	freight, err := s.build(req)
	if err != nil {
		return domain.Freight{}, err
	}
	freight.ID = s.genID.Generate()

	if err := s.repo.Insert(ctx, s.db, &freight); err != nil {
		return domain.Freight{}, mapWriteError(err)
	}
	return freight, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateFreightRequest) (domain.Freight, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Freight{}, err
	}
	freight, err := s.build(req.FreightRequest)
	if err != nil {
		return domain.Freight{}, err
	}
	freight.ID = id

	affected, err := s.repo.Update(ctx, s.db, &freight)
	if err != nil {
		return domain.Freight{}, mapWriteError(err)
	}
	if affected == 0 {
		return domain.Freight{}, domain.ErrNotFound
	}
	return freight, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	freightID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, freightID)
	if err != nil {
		return db.Classify(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) build(req domain.FreightRequest) (domain.Freight, error) {
	transportistaID, ok := input.ID(req.TransportistaID)
	if !ok {
		return domain.Freight{}, domain.ErrInvalidTransportista
	}
	fecha, err := input.Date(req.Fecha)
	if err != nil {
		return domain.Freight{}, domain.ErrInvalidFecha
	}
	cancelacion, err := input.OptionalDate(req.FechaCancelacion)
	if err != nil {
		return domain.Freight{}, domain.ErrInvalidFecha
	}
	for _, v := range []*float64{req.ValorFlete, req.Adelanto, req.Pago} {
		if v != nil && *v < 0 {
			return domain.Freight{}, domain.ErrInvalidAmount
		}
	}

	return domain.Freight{
		Fecha:             fecha,
		TransportistaID:   transportistaID,
		GuiaRemitente:     input.OptionalString(req.GuiaRemitente),
		GuiaTransportista: input.OptionalString(req.GuiaTransportista),
		DetalleCarga:      input.OptionalString(req.DetalleCarga),
		ValorFlete:        req.ValorFlete,
		Adelanto:          input.FloatOr(req.Adelanto, 0),
		Pago:              input.FloatOr(req.Pago, 0),
		Observacion:       input.OptionalString(req.Observacion),
		FechaCancelacion:  cancelacion,
		Estado:            input.StringOr(req.Estado, s.defaults.Get().FreightStatus),
	}, nil
}

// mapWriteError turns a rejected carrier reference into a validation error.
func mapWriteError(err error) error {
	if db.IsForeignKeyErr(err) {
		return domain.ErrInvalidTransportista
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
