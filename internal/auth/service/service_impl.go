package service

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/auth/password"
	"github.com/maderas/backend/internal/auth/token"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/pkg/db"
	"github.com/maderas/backend/pkg/input"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dummyHash is compared against when the account does not exist so that
// every failed login costs one bcrypt comparison.
var (
	dummyOnce sync.Once
	dummyHash string
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Tokens   *token.Issuer
	Defaults *config.DefaultsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	tokens   *token.Issuer
	defaults *config.DefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		tokens:   p.Tokens,
		defaults: p.Defaults,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.User{}, domain.ErrInvalidNombre
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return domain.User{}, err
	}
	defaults := s.defaults.Get()
	rol, err := normalizeRole(req.Rol, defaults.UserRole)
	if err != nil {
		return domain.User{}, err
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.User{}, db.Classify(err)
	}
	if existing != nil {
		return domain.User{}, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:        s.genID.Generate(),
		Nombre:    nombre,
		Email:     email,
		Password:  hashed,
		Rol:       rol,
		Estado:    defaults.UserStatus,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, db.Classify(err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("rol", user.Rol))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResult{}, db.Classify(err)
	}
	if user == nil {
		password.Verify(req.Password, fallbackHash())
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, user.Password) {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}
	if user.Estado != s.defaults.Get().UserStatus {
		s.log.Debug("login rejected for inactive user", zap.String("user_id", user.ID.String()))
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	raw, expiresAt, err := s.tokens.Sign(domain.Principal{
		ID:    user.ID.String(),
		Email: user.Email,
		Rol:   user.Rol,
	})
	if err != nil {
		return domain.LoginResult{}, err
	}

	return domain.LoginResult{
		Token:     raw,
		ExpiresAt: expiresAt,
		User: domain.UserSummary{
			ID:     user.ID,
			Email:  user.Email,
			Rol:    user.Rol,
			Nombre: user.Nombre,
		},
	}, nil
}

func (s *Service) ValidateToken(_ context.Context, rawToken string) (domain.Principal, error) {
	return s.tokens.Parse(rawToken)
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) ([]domain.User, error) {
	users, err := s.repo.List(ctx, s.db, domain.ListUserFilter{
		Q:      strings.TrimSpace(req.Q),
		Estado: strings.TrimSpace(req.Estado),
		Rol:    strings.TrimSpace(req.Rol),
	})
	if err != nil {
		return nil, db.Classify(err)
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	userID, ok := input.ID(id)
	if !ok {
		return domain.User{}, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.User{}, db.Classify(err)
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateUserRequest) (domain.User, error) {
	userID, ok := input.ID(req.ID)
	if !ok {
		return domain.User{}, domain.ErrInvalidID
	}
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.User{}, domain.ErrInvalidNombre
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, err
	}
	defaults := s.defaults.Get()
	rol, err := normalizeRole(req.Rol, defaults.UserRole)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:     userID,
		Nombre: nombre,
		Email:  email,
		Rol:    rol,
		Estado: input.StringOr(req.Estado, defaults.UserStatus),
	}
	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return domain.User{}, err
		}
		hashed, err := password.Hash(req.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.Password = hashed
	}

	affected, err := s.repo.Update(ctx, s.db, &user)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, db.Classify(err)
	}
	if affected == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := input.ID(id)
	if !ok {
		return domain.ErrInvalidID
	}

	affected, err := s.repo.SetEstado(ctx, s.db, userID, s.defaults.Get().UserInactiveState)
	if err != nil {
		return db.Classify(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(email) {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func validatePassword(value string) error {
	if strings.TrimSpace(value) == "" || password.IsTooLong(value) {
		return domain.ErrInvalidPassword
	}
	return nil
}

func normalizeRole(value, def string) (string, error) {
	rol := strings.ToLower(input.StringOr(value, def))
	switch rol {
	case domain.RoleAdmin, domain.RoleUser:
		return rol, nil
	default:
		return "", domain.ErrInvalidRole
	}
}

func fallbackHash() string {
	dummyOnce.Do(func() {
		dummyHash, _ = password.Hash("maderas-login-placeholder")
	})
	return dummyHash
}
