package store

import (
	"context"
	"time"
)

// OpRecorder receives one call per store operation.
type OpRecorder interface {
	RecordStoreOp(backend, op string, duration time.Duration, err error)
}

// Operation names reported to the recorder.
const (
	OpGet    = "get"
	OpPut    = "put"
	OpDelete = "delete"
	OpPing   = "ping"
)

type instrumentedBlobs struct {
	inner    Blobs
	backend  string
	recorder OpRecorder
	now      func() time.Time
}

// NewInstrumented wraps inner so every call reports latency and errors under backend.
func NewInstrumented(inner Blobs, backend string, recorder OpRecorder) Blobs {
	if recorder == nil {
		return inner
	}
	return &instrumentedBlobs{inner: inner, backend: backend, recorder: recorder, now: time.Now}
}

func (b *instrumentedBlobs) observe(op string, start time.Time, err error) {
	b.recorder.RecordStoreOp(b.backend, op, b.now().Sub(start), err)
}

func (b *instrumentedBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := b.now()
	v, found, err := b.inner.Get(ctx, key)
	b.observe(OpGet, start, err)
	return v, found, err
}

func (b *instrumentedBlobs) Put(ctx context.Context, key string, value []byte) error {
	start := b.now()
	err := b.inner.Put(ctx, key, value)
	b.observe(OpPut, start, err)
	return err
}

func (b *instrumentedBlobs) Delete(ctx context.Context, key string) error {
	start := b.now()
	err := b.inner.Delete(ctx, key)
	b.observe(OpDelete, start, err)
	return err
}

func (b *instrumentedBlobs) Ping(ctx context.Context) error {
	start := b.now()
	err := b.inner.Ping(ctx)
	b.observe(OpPing, start, err)
	return err
}

func (b *instrumentedBlobs) Close() error {
	return b.inner.Close()
}
