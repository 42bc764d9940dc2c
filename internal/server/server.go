package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/league-stats-service/internal/app/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/config"
	httpserver "github.com/preston-bernstein/league-stats-service/internal/http"
	"github.com/preston-bernstein/league-stats-service/internal/http/handlers"
	"github.com/preston-bernstein/league-stats-service/internal/importer"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
	"github.com/preston-bernstein/league-stats-service/internal/metrics"
	"github.com/preston-bernstein/league-stats-service/internal/realtime"
	"github.com/preston-bernstein/league-stats-service/internal/store"
	"github.com/preston-bernstein/league-stats-service/internal/synthetic"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.LeagueStore
	leagues       *leagues.Service
	hub           *realtime.Hub
	httpServer    httpServer
	metricsServer httpServer
	importer      Importer
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured store, telemetry and importer.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	leagueStore, err := newStoreFactory(logger, recorder).build(ctx, cfg.Store)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}

	hub := realtime.NewHub(logger, recorder, cfg.CORSOrigin)
	svc := leagues.NewService(leagueStore,
		leagues.WithPublisher(hub),
		leagues.WithRecorder(recorder),
		leagues.WithLogger(logger),
		leagues.WithSeasonPrefix(cfg.SeasonPrefix),
	)

	var imp Importer
	if cfg.Import.Enabled() {
		imp = importer.New(cfg.Import.Dir, svc, logger, recorder, cfg.Import.Interval)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         leagueStore,
		leagues:       svc,
		hub:           hub,
		httpServer:    buildHTTPServer(cfg, svc, leagueStore, hub, imp, logger, recorder),
		metricsServer: metricsSrv,
		importer:      imp,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, imp Importer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		importer:   imp,
	}
}

func buildHTTPServer(cfg config.Config, svc *leagues.Service, leagueStore *store.LeagueStore, hub *realtime.Hub, imp Importer, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	opts := []handlers.Option{
		handlers.WithPinger(leagueStore),
		handlers.WithMaxUploadBytes(cfg.MaxUploadBytes),
	}
	if imp != nil {
		opts = append(opts, handlers.WithImporterStatus(imp.Status))
	}
	handler := handlers.NewHandler(svc, synthetic.New(cfg.SyntheticSeed), logger, opts...)
	router := httpserver.NewRouter(handler, hub)
	return newHTTPServer(":"+cfg.Port, httpserver.Wrap(router, logger, recorder, cfg.CORSOrigin))
}

// Run starts the hub, importer and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	if s.hub != nil {
		s.hub.Start(ctx)
	}
	s.startServer(stop)
	if s.importer != nil {
		s.importer.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.importer != nil {
		if err := s.importer.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop importer", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.hub != nil {
		_ = s.hub.Stop(shutdownCtx)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
