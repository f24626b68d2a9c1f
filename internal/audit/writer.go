// Package audit persists the routing audit trail asynchronously, prunes it
// on a schedule and serves it over HTTP.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	coreaudit "github.com/hostbus/eventroute/internal/core/audit"
	"github.com/hostbus/eventroute/internal/core/storage"
)

type WriterOptions struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

func (o WriterOptions) normalized() WriterOptions {
	if o.BufferSize <= 0 {
		o.BufferSize = 4096
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 256
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = time.Second
	}
	return o
}

// item carries exactly one of its fields.
type item struct {
	event    *coreaudit.EventLogEntry
	dispatch *coreaudit.DispatchRecord
}

// Writer batches audit records into a storage.AuditStore from one flusher
// goroutine. Record calls block while the buffer is full so that nothing is
// dropped; records arriving after Close are written synchronously.
type Writer struct {
	store storage.AuditStore
	opts  WriterOptions

	mu     sync.RWMutex
	closed bool
	items  chan item
	done   chan struct{}
}

// NewWriter starts the flusher.
func NewWriter(store storage.AuditStore, opts WriterOptions) *Writer {
	if store == nil {
		panic("audit: store must not be nil")
	}
	opts = opts.normalized()

	w := &Writer{
		store: store,
		opts:  opts,
		items: make(chan item, opts.BufferSize),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Writer) RecordEvent(entry coreaudit.EventLogEntry) {
	w.enqueue(item{event: &entry})
}

func (w *Writer) RecordDispatch(rec coreaudit.DispatchRecord) {
	w.enqueue(item{dispatch: &rec})
}

func (w *Writer) enqueue(it item) {
	w.mu.RLock()
	if !w.closed {
		w.items <- it
		w.mu.RUnlock()
		return
	}
	w.mu.RUnlock()

	// Late record after shutdown: write it through.
	var b batch
	b.add(it)
	w.persist(context.Background(), &b)
}

// Close stops accepting buffered records, flushes what is queued and waits
// for the flusher, up to ctx.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.items)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type batch struct {
	events     []coreaudit.EventLogEntry
	dispatches []coreaudit.DispatchRecord
}

func (b *batch) add(it item) {
	if it.event != nil {
		b.events = append(b.events, *it.event)
	}
	if it.dispatch != nil {
		b.dispatches = append(b.dispatches, *it.dispatch)
	}
}

func (b *batch) size() int {
	return len(b.events) + len(b.dispatches)
}

func (w *Writer) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.opts.FlushInterval)
	defer ticker.Stop()

	var b batch
	for {
		select {
		case it, ok := <-w.items:
			if !ok {
				w.persist(context.Background(), &b)
				slog.Info("[AuditWriter] Final flush complete")
				return
			}
			b.add(it)
			if b.size() >= w.opts.BatchSize {
				w.persist(context.Background(), &b)
			}
		case <-ticker.C:
			w.persist(context.Background(), &b)
		}
	}
}

// persist writes and resets b. Event entries go first so that a dispatch
// record never precedes its event in the log.
func (w *Writer) persist(ctx context.Context, b *batch) {
	if b.size() == 0 {
		return
	}

	if len(b.events) > 0 {
		if err := w.store.AppendEvents(ctx, b.events); err != nil {
			slog.Error("[AuditWriter] Failed to persist event log batch", "error", err, "entries", len(b.events))
		}
	}
	if len(b.dispatches) > 0 {
		if err := w.store.AppendDispatches(ctx, b.dispatches); err != nil {
			slog.Error("[AuditWriter] Failed to persist dispatch batch", "error", err, "records", len(b.dispatches))
		}
	}

	b.events = nil
	b.dispatches = nil
}
