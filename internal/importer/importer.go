package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/league-stats-service/internal/app/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
	"github.com/preston-bernstein/league-stats-service/internal/metrics"
)

const (
	defaultInterval = time.Minute
	processedDir    = "processed"
	failedDir       = "failed"
)

// LeagueImporter loads one CSV file into a league.
type LeagueImporter interface {
	ImportCSV(ctx context.Context, id string, r io.Reader) (leagues.ImportReport, error)
}

// Importer scans an inbox directory on an interval and imports every CSV it finds.
// The file stem names the league. Imported files move to processed/, files the
// service rejects move to failed/, and files hit by store errors stay for the next scan.
type Importer struct {
	dir      string
	target   LeagueImporter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the import loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Imported            int
	Failed              int
}

// IsReady reports whether the importer has completed a scan and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs an Importer with sane defaults.
func New(dir string, target LeagueImporter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Importer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Importer{
		dir:      dir,
		target:   target,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins scanning until the context is cancelled or Stop is called.
func (im *Importer) Start(ctx context.Context) {
	im.startMu.Lock()
	if im.started {
		im.startMu.Unlock()
		return
	}
	im.started = true
	im.startMu.Unlock()

	im.ticker = time.NewTicker(im.interval)

	go func() {
		logging.Info(im.logger, "importer started", logging.FieldFile, im.dir, logging.FieldDurationMS, im.interval.Milliseconds())
		im.scanOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				im.stopTicker()
				logging.Info(im.logger, "importer stopped")
				return
			case <-im.done:
				im.stopTicker()
				logging.Info(im.logger, "importer stopped")
				return
			case <-im.ticker.C:
				im.scanOnce(ctx)
			}
		}
	}()
}

// Stop halts the scan loop.
func (im *Importer) Stop(ctx context.Context) error {
	_ = ctx
	im.stopOnce.Do(func() {
		close(im.done)
		im.stopTicker()
	})
	return nil
}

func (im *Importer) stopTicker() {
	if im.ticker != nil {
		im.ticker.Stop()
	}
}

func (im *Importer) scanOnce(ctx context.Context) {
	start := im.now()
	im.recordAttempt(start)

	imported, failed, err := im.importAll(ctx)
	im.metrics.RecordImportCycle(time.Since(start), err)
	if err != nil {
		logging.Error(im.logger, "import scan failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		im.recordFailure(err, start, imported, failed)
		return
	}
	im.recordSuccess(start, imported, failed)
	if imported+failed > 0 {
		logging.Info(im.logger, "import scan finished",
			logging.FieldCount, imported,
			logging.FieldRejected, failed,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func (im *Importer) importAll(ctx context.Context) (imported, failed int, err error) {
	files, err := filepath.Glob(filepath.Join(im.dir, "*.csv"))
	if err != nil {
		return 0, 0, fmt.Errorf("scan %s: %w", im.dir, err)
	}
	sort.Strings(files)

	var errs []error
	for _, path := range files {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		importErr := im.importFile(ctx, path)
		switch {
		case importErr == nil:
			imported++
			if err := im.move(path, processedDir); err != nil {
				errs = append(errs, err)
			}
		case leagues.IsClientError(importErr):
			failed++
			logging.Warn(im.logger, "import file rejected", logging.FieldFile, filepath.Base(path), "error", importErr)
			if err := im.move(path, failedDir); err != nil {
				errs = append(errs, err)
			}
		default:
			errs = append(errs, fmt.Errorf("import %s: %w", filepath.Base(path), importErr))
		}
	}
	return imported, failed, errors.Join(errs...)
}

func (im *Importer) importFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := im.target.ImportCSV(ctx, LeagueID(path), f)
	if err != nil {
		return err
	}
	logging.Info(im.logger, "import file loaded",
		logging.FieldFile, filepath.Base(path),
		logging.FieldLeague, report.League.ID,
		logging.FieldCount, report.Accepted,
		logging.FieldRejected, len(report.Rejected),
	)
	return nil
}

// move renames path into dir/sub, prefixing a timestamp so repeated uploads of the same name are kept.
func (im *Importer) move(path, sub string) error {
	target := filepath.Join(im.dir, sub)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	name := im.now().UTC().Format("20060102T150405") + "-" + filepath.Base(path)
	if err := os.Rename(path, filepath.Join(target, name)); err != nil {
		return fmt.Errorf("move %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LeagueID derives the league id from an inbox file name.
func LeagueID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (im *Importer) recordAttempt(at time.Time) {
	im.statusMu.Lock()
	defer im.statusMu.Unlock()
	im.status.LastAttempt = at
}

func (im *Importer) recordSuccess(at time.Time, imported, failed int) {
	im.statusMu.Lock()
	defer im.statusMu.Unlock()
	im.status.ConsecutiveFailures = 0
	im.status.LastError = ""
	im.status.LastSuccess = at
	im.status.Imported += imported
	im.status.Failed += failed
}

func (im *Importer) recordFailure(err error, at time.Time, imported, failed int) {
	im.statusMu.Lock()
	defer im.statusMu.Unlock()
	im.status.ConsecutiveFailures++
	if err != nil {
		im.status.LastError = err.Error()
	}
	im.status.LastAttempt = at
	im.status.Imported += imported
	im.status.Failed += failed
}

// Status returns a snapshot of the importer's recent health.
func (im *Importer) Status() Status {
	im.statusMu.RLock()
	defer im.statusMu.RUnlock()
	return im.status
}
