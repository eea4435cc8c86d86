package metrics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("entity", "facturas"),
		attribute.String("cliente_id", "456"),
		attribute.String("operation", "create"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "entity" && attrs[1].Key != "entity" {
		t.Fatalf("expected entity to be retained")
	}
	if attrs[0].Key != "operation" && attrs[1].Key != "operation" {
		t.Fatalf("expected operation to be retained")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordWrite(context.Background(), "clientes", "create")
	m.RecordLogin(context.Background(), "success")
	m.RecordRateLimitDenied(context.Background(), "/api/login", "exhausted")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "maderas"}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.RecordWrite(context.Background(), "packing", "delete")
}
