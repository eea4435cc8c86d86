package server

import (
	"fmt"
	"net/http"
	"testing"

	authdomain "github.com/maderas/backend/internal/auth/domain"
	clientdomain "github.com/maderas/backend/internal/client/domain"
	"github.com/maderas/backend/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorStoreClassifications(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"duplicate key", fmt.Errorf("insert cliente: %w", db.ErrDuplicateKey), http.StatusConflict, db.ErrDuplicateKey.Error()},
		{"email taken", fmt.Errorf("register: %w", authdomain.ErrEmailTaken), http.StatusConflict, ""},
		{"foreign key", fmt.Errorf("delete: %w", db.ErrForeignKeyViolation), http.StatusBadRequest, db.ErrForeignKeyViolation.Error()},
		{"has dependents", clientdomain.ErrHasDependents, http.StatusBadRequest, clientdomain.ErrHasDependents.Error()},
		{"unavailable", fmt.Errorf("query: %w", db.ErrUnavailable), http.StatusServiceUnavailable, ""},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.detail, payload.Detail)
		})
	}
}

func TestClassifyDuplicateKeyForLog(t *testing.T) {
	kind, code := classifyErrorForLog(fmt.Errorf("wrap: %w", db.ErrDuplicateKey))
	assert.Equal(t, typeConflict, kind)
	assert.Equal(t, db.ErrDuplicateKey.Error(), code)
}
