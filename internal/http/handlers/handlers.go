package handlers

import (
	"context"
	"io"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/league-stats-service/internal/app/leagues"
	domainleagues "github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/importer"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
	"github.com/preston-bernstein/league-stats-service/internal/synthetic"
)

const (
	defaultMaxUploadBytes = 5 << 20
	readyPingTimeout      = 2 * time.Second
)

// LeagueService is the league behaviour the handlers depend on.
type LeagueService interface {
	List(ctx context.Context) ([]domainleagues.League, error)
	Create(ctx context.Context, id string) (domainleagues.League, error)
	Get(ctx context.Context, id string) (domainleagues.League, domainleagues.LeagueData, error)
	ImportCSV(ctx context.Context, id string, r io.Reader) (leagues.ImportReport, error)
	Complete(ctx context.Context, id string) (domainleagues.League, error)
	Delete(ctx context.Context, id string) error
	Dataset(ctx context.Context) (domainleagues.Dataset, error)
	Teams(ctx context.Context) ([]string, error)
}

// Pinger checks the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires HTTP routes to the league service and the engines.
type Handler struct {
	svc       LeagueService
	synth     *synthetic.Generator
	logger    *slog.Logger
	pinger    Pinger
	statusFn  func() importer.Status
	maxUpload int64
}

// Option customizes a Handler.
type Option func(*Handler)

// WithPinger makes /ready check the store.
func WithPinger(p Pinger) Option {
	return func(h *Handler) { h.pinger = p }
}

// WithImporterStatus makes /ready report the inbox importer's health.
func WithImporterStatus(fn func() importer.Status) Option {
	return func(h *Handler) { h.statusFn = fn }
}

// WithMaxUploadBytes caps CSV upload bodies.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc LeagueService, synth *synthetic.Generator, logger *slog.Logger, opts ...Option) *Handler {
	if synth == nil {
		synth = synthetic.New(0)
	}
	h := &Handler{
		svc:       svc,
		synth:     synth,
		logger:    logger,
		maxUpload: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: the store answers and the importer, when running, is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
		err := h.pinger.Ping(ctx)
		cancel()
		if err != nil {
			logging.Warn(logger, "store ping failed", "error", err)
			writeError(w, r, nethttp.StatusServiceUnavailable, "store unavailable", h.logger)
			return
		}
	}
	if h.statusFn != nil {
		status := h.statusFn()
		if !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
