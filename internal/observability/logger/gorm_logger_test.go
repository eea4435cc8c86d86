package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParamsFilterRedactsCredentialStatements(t *testing.T) {
	l := NewGormLogger(GormLoggerConfig{Level: gormlogger.Info, LogParams: true})
	ctx := context.Background()

	sql, params := l.ParamsFilter(ctx, "INSERT INTO `usuarios` (`email`,`password`) VALUES (?,?)", "ana@maderas.pe", "$2a$10$hash")
	assert.Contains(t, sql, "usuarios")
	assert.Nil(t, params)

	_, params = l.ParamsFilter(ctx, "UPDATE usuarios SET password=? WHERE id = ?", "$2a$10$hash", 7)
	assert.Nil(t, params)

	_, params = l.ParamsFilter(ctx, "SELECT * FROM clientes WHERE ruc = ?", "20555")
	assert.Equal(t, []any{"20555"}, params)
}

func TestParamsFilterDropsValuesUnlessEnabled(t *testing.T) {
	l := NewGormLogger(DefaultGormLoggerConfig())

	_, params := l.ParamsFilter(context.Background(), "SELECT * FROM clientes WHERE ruc = ?", "20555")
	assert.Nil(t, params)
}

func TestTraceWritesQueryFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	l := NewGormLogger(GormLoggerConfig{Level: gormlogger.Info})
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM `facturas` WHERE id = 1", 1
	}, nil)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "DELETE FROM clientes WHERE id = 2", 0
	}, errors.New("boom"))

	entries := logs.FilterMessage("db.query").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "SELECT", first["operation"])
	assert.Equal(t, "facturas", first["table"])
	assert.Equal(t, int64(1), first["rows_affected"])

	second := entries[1].ContextMap()
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "DELETE", second["operation"])
	assert.Equal(t, "clientes", second["table"])
	assert.Equal(t, "boom", second["error"])
}

func TestTraceSilentLogsNothing(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	l := NewGormLogger(DefaultGormLoggerConfig()).LogMode(gormlogger.Silent)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 0
	}, errors.New("boom"))

	assert.Zero(t, logs.Len())
}

func TestTableFromSQL(t *testing.T) {
	assert.Equal(t, "compras", tableFromSQL("UPDATE `compras` SET estado = ?"))
	assert.Equal(t, "fletes", tableFromSQL("SELECT COUNT(*) FROM (SELECT id FROM fletes) t"))
	assert.Equal(t, "", tableFromSQL("SELECT 1"))
}
