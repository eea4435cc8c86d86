package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "postgres fk", err: &pgconn.PgError{Code: "23503"}, want: ErrForeignKeyViolation},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicateKey},
		{name: "postgres too many connections", err: &pgconn.PgError{Code: "53300"}, want: ErrUnavailable},
		{name: "mysql parent referenced", err: &mysqldriver.MySQLError{Number: 1451}, want: ErrForeignKeyViolation},
		{name: "mysql parent missing", err: &mysqldriver.MySQLError{Number: 1452}, want: ErrForeignKeyViolation},
		{name: "mysql duplicate", err: &mysqldriver.MySQLError{Number: 1062}, want: ErrDuplicateKey},
		{name: "mysql too many connections", err: &mysqldriver.MySQLError{Number: 1040}, want: ErrUnavailable},
		{name: "sqlite fk", err: errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), want: ErrForeignKeyViolation},
		{name: "sqlite unique", err: errors.New("constraint failed: UNIQUE constraint failed: usuarios.email (2067)"), want: ErrDuplicateKey},
		{name: "gorm translated fk", err: gorm.ErrForeignKeyViolated, want: ErrForeignKeyViolation},
		{name: "gorm translated unique", err: gorm.ErrDuplicatedKey, want: ErrDuplicateKey},
		{name: "deadline", err: fmt.Errorf("begin tx: %w", context.DeadlineExceeded), want: ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			assert.ErrorIs(t, got, tc.want)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestClassifyLeavesUnknownErrors(t *testing.T) {
	boom := errors.New("boom")
	assert.Same(t, boom, Classify(boom))
	assert.NoError(t, Classify(nil))
}

func TestClassifyIsIdempotent(t *testing.T) {
	once := Classify(&mysqldriver.MySQLError{Number: 1062})
	assert.Equal(t, once, Classify(once))
}
