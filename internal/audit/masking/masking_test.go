package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret("  "))
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "****cdef", MaskSecret("0123456789abcdef"))
}

func TestMaskSensitive(t *testing.T) {
	in := map[string]any{
		"email":         "ana@maderas.pe",
		"password":      "super-secreta-123",
		"new_password":  42,
		"":              "dropped",
		"nested":        map[string]any{"api_token": "tok_abcdefghijkl", "razon_social": "Maderera SAC"},
		"Authorization": nil,
	}

	out := MaskSensitive(in)
	assert.Equal(t, "ana@maderas.pe", out["email"])
	assert.Equal(t, "****-123", out["password"])
	assert.Equal(t, "****", out["new_password"])
	assert.Nil(t, out["Authorization"])
	assert.NotContains(t, out, "")

	nested := out["nested"].(map[string]any)
	assert.Equal(t, "****ijkl", nested["api_token"])
	assert.Equal(t, "Maderera SAC", nested["razon_social"])

	assert.Nil(t, MaskSensitive(nil))
}
