package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/config"
	"github.com/preston-bernstein/league-stats-service/internal/metrics"
	"github.com/preston-bernstein/league-stats-service/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := newTestConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	srv, err := newServerWithMetrics(context.Background(), newTestConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsEnabledBuildsMetricsServer(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	cfg := newTestConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true, Port: "9091"}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metricsServer == nil || srv.metricsServer.Addr() != ":9091" {
		t.Fatalf("expected metrics server on :9091")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := newTestConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for an injected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected injected shutdown to succeed, got %v", err)
	}
}

func TestStoreOperationsAreRecorded(t *testing.T) {
	rec := metrics.NewRecorder()
	srv, err := newServerWithMetrics(context.Background(), newTestConfig(), nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if _, err := srv.leagues.List(context.Background()); err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if rec.StoreCalls(config.StoreMemory) == 0 {
		t.Fatalf("expected store calls recorded for the memory backend")
	}
}
