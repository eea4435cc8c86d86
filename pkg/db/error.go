package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"syscall"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrUnavailable         = errors.New("store unavailable")
)

// Classify wraps driver errors with one of the package sentinels.
// Errors that match none of them are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrForeignKeyViolation), errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrUnavailable):
		return err
	case IsForeignKeyErr(err):
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	case IsDuplicateKeyErr(err):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case IsUnavailableErr(err):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}

func IsForeignKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrForeignKeyViolation) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		// 1451: parent row referenced, 1452: parent row missing
		return myErr.Number == 1451 || myErr.Number == 1452
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsUnavailableErr reports transient failures: pool wait exceeded, lost or
// refused connections and server-side connection limits.
func IsUnavailableErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 53300 too_many_connections, 57P03 cannot_connect_now
		return pgErr.Code == "53300" || pgErr.Code == "57P03"
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		// 1040: too many connections
		return myErr.Number == 1040
	}

	return strings.Contains(err.Error(), "database is locked")
}
