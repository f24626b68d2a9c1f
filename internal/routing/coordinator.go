// Package routing owns the event loop: it keeps an immutable snapshot of the
// rule set, matches each published event against it and hands every match to
// the dispatcher on its own goroutine.
package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hostbus/eventroute/internal/api/v1"
	"github.com/hostbus/eventroute/internal/core/action"
	"github.com/hostbus/eventroute/internal/core/audit"
	"github.com/hostbus/eventroute/internal/core/rule"
	"github.com/hostbus/eventroute/internal/dispatch"
	"github.com/hostbus/eventroute/internal/rules"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrStopped is returned by Publish once Run has returned.
	ErrStopped = errors.New("routing coordinator stopped")
	// ErrInvalidEvent wraps envelope validation failures from Publish.
	ErrInvalidEvent = errors.New("invalid event")
)

// RuleSource is the part of the rule store the coordinator reads.
type RuleSource interface {
	Snapshot(ctx context.Context) (int64, []rule.Rule, error)
	Subscribe() (<-chan rules.ChangeNotice, func())
}

// Dispatcher executes one action for one event.
type Dispatcher interface {
	Dispatch(ctx context.Context, act action.Action, evt *v1.Event) dispatch.Result
}

// Recorder receives the audit trail: one entry per event, one record per dispatch.
type Recorder interface {
	RecordEvent(entry audit.EventLogEntry)
	RecordDispatch(rec audit.DispatchRecord)
}

const maxRefreshAttempts = 3

type Options struct {
	QueueSize int
	// MaxInFlight caps concurrent dispatches. 0 leaves them unbounded so a
	// hung port never delays the dispatches of unrelated rules.
	MaxInFlight  int
	DrainTimeout time.Duration
}

func (o Options) normalized() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 1024
	}
	if o.MaxInFlight < 0 {
		o.MaxInFlight = 0
	}
	if o.DrainTimeout <= 0 {
		o.DrainTimeout = 30 * time.Second
	}
	return o
}

// snapshot is never mutated after it is published.
type snapshot struct {
	revision int64
	rules    []rule.Rule // enabled rules only, in list order
}

type Coordinator struct {
	source     RuleSource
	dispatcher Dispatcher
	recorder   Recorder
	opts       Options

	queue   chan *v1.Event
	stopped chan struct{}
	running atomic.Bool
	// publishing is held shared by every Publish between its stopped check
	// and its enqueue; Run takes it exclusively before the final drain.
	publishing sync.RWMutex

	current  atomic.Pointer[snapshot]
	refresh  singleflight.Group
	inflight sync.WaitGroup
	sem      *semaphore.Weighted // nil when unbounded

	now   func() time.Time
	newID func() string
}

func NewCoordinator(source RuleSource, dispatcher Dispatcher, recorder Recorder, opts Options) *Coordinator {
	if source == nil {
		panic("routing: rule source must not be nil")
	}
	if dispatcher == nil {
		panic("routing: dispatcher must not be nil")
	}
	if recorder == nil {
		panic("routing: recorder must not be nil")
	}
	opts = opts.normalized()

	var sem *semaphore.Weighted
	if opts.MaxInFlight > 0 {
		sem = semaphore.NewWeighted(int64(opts.MaxInFlight))
	}

	return &Coordinator{
		source:     source,
		dispatcher: dispatcher,
		recorder:   recorder,
		opts:       opts,
		queue:      make(chan *v1.Event, opts.QueueSize),
		stopped:    make(chan struct{}),
		sem:        sem,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// Publish enqueues evt for routing. It blocks while the queue is full.
func (c *Coordinator) Publish(ctx context.Context, evt *v1.Event) error {
	if evt == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if err := evt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	c.publishing.RLock()
	defer c.publishing.RUnlock()

	select {
	case <-c.stopped:
		return ErrStopped
	default:
	}

	select {
	case c.queue <- evt:
		return nil
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Revision is the revision of the snapshot currently used for matching, 0
// before the first load.
func (c *Coordinator) Revision() int64 {
	if s := c.current.Load(); s != nil {
		return s.revision
	}
	return 0
}

// Refresh loads the rule set and installs it unless a newer snapshot is
// already in place. Concurrent calls share one load.
func (c *Coordinator) Refresh(ctx context.Context) error {
	_, err, _ := c.refresh.Do("snapshot", func() (interface{}, error) {
		rev, list, err := c.source.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load rule snapshot: %w", err)
		}

		next := &snapshot{revision: rev}
		for _, r := range list {
			if r.Enabled {
				next.rules = append(next.rules, r)
			}
		}

		for {
			cur := c.current.Load()
			if cur != nil && cur.revision >= rev {
				return nil, nil
			}
			if c.current.CompareAndSwap(cur, next) {
				slog.Info("[Coordinator] Rule snapshot installed",
					"revision", rev,
					"rules", len(list),
					"enabled", len(next.rules))
				return nil, nil
			}
		}
	})
	return err
}

// Run processes events until ctx is cancelled, then routes what is still
// queued and waits up to the drain timeout for in-flight dispatches.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("routing coordinator already running")
	}

	if err := c.Refresh(ctx); err != nil {
		close(c.stopped)
		return err
	}

	notices, unsubscribe := c.source.Subscribe()
	defer unsubscribe()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go c.watch(watchCtx, notices)

	// Dispatches outlive ctx so that shutdown can drain them; each one is
	// still bounded by the dispatcher timeout.
	dispatchCtx := context.WithoutCancel(ctx)

	slog.Info("[Coordinator] Started",
		"queue_size", c.opts.QueueSize,
		"max_in_flight", c.opts.MaxInFlight,
		"revision", c.Revision())

	for {
		select {
		case evt := <-c.queue:
			c.route(dispatchCtx, evt)
		case <-ctx.Done():
			close(c.stopped)
			// Wait out publishers that passed the stopped check so that
			// everything they enqueued is seen by drain.
			c.publishing.Lock()
			c.publishing.Unlock() //nolint:staticcheck // barrier only
			c.drain(dispatchCtx)
			return nil
		}
	}
}

func (c *Coordinator) watch(ctx context.Context, notices <-chan rules.ChangeNotice) {
	for {
		select {
		case <-ctx.Done():
			return
		case notice, ok := <-notices:
			if !ok {
				return
			}
			// A refresh already in flight may have read an older revision;
			// keep going until the notice's revision is installed.
			for attempt := 0; attempt < maxRefreshAttempts && c.Revision() < notice.Revision; attempt++ {
				if err := c.Refresh(ctx); err != nil {
					slog.Error("[Coordinator] Rule refresh failed", "error", err, "target_revision", notice.Revision)
					break
				}
			}
		}
	}
}

func (c *Coordinator) drain(ctx context.Context) {
	queued := 0
	for {
		select {
		case evt := <-c.queue:
			c.route(ctx, evt)
			queued++
			continue
		default:
		}
		break
	}

	slog.Info("[Coordinator] Stopping, waiting for in-flight dispatches...", "queued_routed", queued)

	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("[Coordinator] Drain complete")
	case <-time.After(c.opts.DrainTimeout):
		slog.Warn("[Coordinator] Drain timed out, abandoning in-flight dispatches", "timeout", c.opts.DrainTimeout)
	}
}

// route matches evt against the current snapshot and starts one dispatch per
// match. It never waits on a dispatch.
func (c *Coordinator) route(ctx context.Context, evt *v1.Event) {
	snap := c.current.Load()
	if snap == nil {
		snap = &snapshot{}
	}

	var matched []rule.Rule
	for i := range snap.rules {
		if snap.rules[i].Matches(evt) {
			matched = append(matched, snap.rules[i])
		}
	}

	c.recorder.RecordEvent(audit.EventLogEntry{
		ID:           evt.ID,
		Source:       evt.Source,
		Type:         evt.Type,
		Time:         evt.Time,
		Subject:      evt.Subject,
		Payload:      evt.Payload(),
		ReceivedAt:   c.now(),
		RuleRevision: snap.revision,
		MatchedRules: len(matched),
	})

	slog.Debug("[Coordinator] Event routed",
		"event_id", evt.ID,
		"event_type", evt.Type,
		"revision", snap.revision,
		"matched", len(matched))

	for _, r := range matched {
		c.inflight.Add(1)
		go c.dispatch(ctx, snap.revision, r, evt)
	}
}

func (c *Coordinator) dispatch(ctx context.Context, revision int64, r rule.Rule, evt *v1.Event) {
	defer c.inflight.Done()

	rec := audit.DispatchRecord{
		ID:           c.newID(),
		EventID:      evt.ID,
		RuleID:       r.ID,
		RuleRevision: revision,
		ActionKind:   string(r.Action.Kind()),
		Target:       r.Action.Target(),
	}

	if c.sem != nil {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			rec.StartedAt = c.now()
			rec.Outcome = audit.OutcomeFailure
			rec.Error = err.Error()
			c.recorder.RecordDispatch(rec)
			return
		}
		defer c.sem.Release(1)
	}

	rec.StartedAt = c.now()
	res := c.dispatcher.Dispatch(ctx, r.Action, evt)

	rec.Outcome = res.Outcome
	rec.Result = res.Output
	rec.Duration = res.Duration
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	c.recorder.RecordDispatch(rec)
}
