package otel

import (
	"context"
	"testing"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"no endpoint", Config{Service: "folio"}, false},
		{"endpoint", Config{Service: "folio", Endpoint: "http://localhost:4318"}, true},
		{"disabled", Config{Service: "folio", Endpoint: "http://localhost:4318", Disabled: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupDisabledIsNoop(t *testing.T) {
	// The process environment must not switch tracing on.
	t.Setenv("FOLIO_OTEL_ENDPOINT", "http://127.0.0.1:1")

	shutdown, err := Setup(context.Background(), Config{Service: "test"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestSetupRequiresService(t *testing.T) {
	if _, err := Setup(context.Background(), Config{Endpoint: "http://127.0.0.1:1"}); err == nil {
		t.Error("Expected error without a service name")
	}
}

func TestSetupWithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Service: "test", Endpoint: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	// Nothing was recorded, so the flush does not contact the collector.
	shutdown(context.Background())
}
