package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSensitiveKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/login"),
		attribute.String("password", "secret"),
		attribute.String("Authorization", "Bearer x"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeErrorKeepsPrefixOnly(t *testing.T) {
	err := SafeError(errors.New("foreign key violation: Error 1451 (23000): cannot delete parent row"))
	assert.EqualError(t, err, "foreign key violation")
	assert.Nil(t, SafeError(nil))
}
