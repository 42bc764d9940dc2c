package metrics

import (
	"sync"
	"time"
)

type backendStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type ingestStats struct {
	files    int
	accepted int
	rejected int
	warnings int
}

// Recorder captures lightweight, in-memory metrics about store calls and ingestion,
// and forwards everything to OpenTelemetry instruments when configured.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*backendStats
	ingest ingestStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*backendStats),
		otel:  otel,
	}
}

// RecordStoreOp increments counters for a store call and stores the last observed latency.
func (r *Recorder) RecordStoreOp(backend, op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[backend]
	if !ok {
		stats = &backendStats{}
		r.stats[backend] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOp(backend, op, duration, err)
	}
}

// RecordIngest tracks the row outcomes of one parsed CSV file.
func (r *Recorder) RecordIngest(accepted, rejected, warnings int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ingest.files++
	r.ingest.accepted += accepted
	r.ingest.rejected += rejected
	r.ingest.warnings += warnings
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordIngest(accepted, rejected, warnings)
	}
}

// StoreCalls returns the total operations recorded for a backend.
func (r *Recorder) StoreCalls(backend string) int {
	return r.Snapshot(backend).Calls
}

// StoreErrors returns the failed operations recorded for a backend.
func (r *Recorder) StoreErrors(backend string) int {
	return r.Snapshot(backend).Errors
}

// LastCallLatency returns the last recorded latency for a backend call.
func (r *Recorder) LastCallLatency(backend string) time.Duration {
	return r.Snapshot(backend).LastCallLatency
}

// Snapshot returns a copy of the current stats for the backend.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[backend]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// IngestSnapshot totals every file recorded so far.
type IngestSnapshot struct {
	Files    int
	Accepted int
	Rejected int
	Warnings int
}

// Ingest returns the ingestion totals.
func (r *Recorder) Ingest() IngestSnapshot {
	if r == nil {
		return IngestSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return IngestSnapshot{
		Files:    r.ingest.files,
		Accepted: r.ingest.accepted,
		Rejected: r.ingest.rejected,
		Warnings: r.ingest.warnings,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordImportCycle tracks inbox scans and failures.
func (r *Recorder) RecordImportCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordImport(duration, err)
}

// RecordBroadcast tracks websocket fan-out: delivered messages and dropped slow clients.
func (r *Recorder) RecordBroadcast(delivered, dropped int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordBroadcast(delivered, dropped)
}
