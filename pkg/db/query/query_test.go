package query

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestBuildWithoutFilters(t *testing.T) {
	sql, args := New("SELECT * FROM clientes").
		Contains("", "razon_social", "ruc").
		Eq("estado", "").
		OrderBy("razon_social ASC").
		Build()

	assert.Equal(t, "SELECT * FROM clientes ORDER BY razon_social ASC", sql)
	assert.NotNil(t, args)
	assert.Empty(t, args)
}

func TestBuildJoinsPresentFiltersInOrder(t *testing.T) {
	desde := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	sql, args := New("SELECT * FROM facturas f").
		Contains("F001", "f.factura_nro", "f.guia_nro").
		Eq("f.estado", "EMITIDA").
		Eq("f.cliente_id", snowflake.ID(7)).
		From("f.fecha", &desde).
		Until("f.fecha", &hasta).
		OrderBy("f.fecha DESC", "f.id DESC").
		Build()

	assert.Equal(t,
		"SELECT * FROM facturas f WHERE (LOWER(f.factura_nro) LIKE LOWER(?) ESCAPE '!' OR LOWER(f.guia_nro) LIKE LOWER(?) ESCAPE '!')"+
			" AND f.estado = ? AND f.cliente_id = ? AND f.fecha >= ? AND f.fecha <= ? ORDER BY f.fecha DESC, f.id DESC",
		sql)
	assert.Equal(t, []any{"%F001%", "%F001%", "EMITIDA", snowflake.ID(7), desde, hasta}, args)
}

func TestEqSkipsAbsentValues(t *testing.T) {
	var nilString *string
	var nilID *snowflake.ID
	blank := "   "
	id := snowflake.ID(99)

	sql, args := New("SELECT * FROM compras").
		Eq("estado", nilString).
		Eq("estado", &blank).
		Eq("proveedor_id", nilID).
		Eq("proveedor_id", snowflake.ID(0)).
		Eq("proveedor_id", &id).
		Build()

	assert.Equal(t, "SELECT * FROM compras WHERE proveedor_id = ?", sql)
	assert.Equal(t, []any{snowflake.ID(99)}, args)
}

func TestContainsSingleColumnHasNoParens(t *testing.T) {
	sql, args := New("SELECT * FROM compras").Contains("Tornillo", "tipo_producto").Build()

	assert.Equal(t, "SELECT * FROM compras WHERE LOWER(tipo_producto) LIKE LOWER(?) ESCAPE '!'", sql)
	assert.Equal(t, []any{"%Tornillo%"}, args)
}

func TestContainsEscapesWildcards(t *testing.T) {
	_, args := New("SELECT * FROM clientes").Contains("50%_off!", "razon_social").Build()

	assert.Equal(t, []any{"%50!%!_off!!%"}, args)
}

func TestValuesAreNeverInlined(t *testing.T) {
	sql, _ := New("SELECT * FROM clientes").
		Contains("'; DROP TABLE clientes; --", "razon_social").
		Eq("estado", "ACTIVO' OR '1'='1").
		Build()

	assert.NotContains(t, sql, "DROP")
	assert.NotContains(t, sql, "ACTIVO")
}

func TestBuildReturnsCopyOfArgs(t *testing.T) {
	b := New("SELECT * FROM clientes").Eq("estado", "ACTIVO")
	_, args := b.Build()
	args[0] = "tampered"

	_, again := b.Build()
	assert.Equal(t, []any{"ACTIVO"}, again)
}
