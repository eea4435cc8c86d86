package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/pkg/db/query"
	"gorm.io/gorm"
)

const selectUsers = `SELECT id, nombre, email, password, rol, estado, created_at FROM usuarios`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO usuarios (id, nombre, email, password, rol, estado, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Nombre,
		user.Email,
		user.Password,
		user.Rol,
		user.Estado,
		user.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	return r.findOne(ctx, db, selectUsers+` WHERE id = ?`, id)
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return r.findOne(ctx, db, selectUsers+` WHERE email = ? LIMIT 1`, email)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, sql string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListUserFilter) ([]domain.User, error) {
	sql, args := query.New(selectUsers).
		Contains(filter.Q, "nombre", "email").
		Eq("estado", filter.Estado).
		Eq("rol", filter.Rol).
		OrderBy("nombre ASC", "id ASC").
		Build()

	users := []domain.User{}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *domain.User) (int64, error) {
	var res *gorm.DB
	if user.Password == "" {
		res = db.WithContext(ctx).Exec(
			`UPDATE usuarios SET nombre = ?, email = ?, rol = ?, estado = ? WHERE id = ?`,
			user.Nombre, user.Email, user.Rol, user.Estado, user.ID,
		)
	} else {
		res = db.WithContext(ctx).Exec(
			`UPDATE usuarios SET nombre = ?, email = ?, password = ?, rol = ?, estado = ? WHERE id = ?`,
			user.Nombre, user.Email, user.Password, user.Rol, user.Estado, user.ID,
		)
	}
	return res.RowsAffected, res.Error
}

func (r *repo) SetEstado(ctx context.Context, db *gorm.DB, id snowflake.ID, estado string) (int64, error) {
	res := db.WithContext(ctx).Exec(`UPDATE usuarios SET estado = ? WHERE id = ?`, estado, id)
	return res.RowsAffected, res.Error
}
