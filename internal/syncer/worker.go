package syncer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clearpond/kassa/internal/pos"
)

const (
	// DefaultInterval is how often the worker attempts to drain the queue.
	DefaultInterval = 10 * time.Second
	// DefaultTimeout bounds one push or pull attempt. A stalled network
	// call may eat at most one tick; it can never stall future ticks.
	DefaultTimeout = 5 * time.Second
)

// Worker is the supervised background task that periodically pushes queued
// changes and pulls reference data.
//
// Lifecycle: Start launches the loop goroutine (running one pull and one
// drain cycle immediately), Stop shuts it down and waits for the in-flight
// attempt to finish. Start is effective once; Stop is idempotent, and Stop
// without a prior Start returns immediately.
//
// Error policy: every network failure is swallowed and logged; the queue is
// left untouched and the next tick retries. The venue keeps selling with no
// connectivity for as long as it takes.
type Worker struct {
	store    Store
	client   *Client
	interval time.Duration
	timeout  time.Duration

	stop      chan struct{}
	done      chan struct{}
	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
}

// Store is the slice of the domain store the worker needs: queue access and
// pull merging. Satisfied by *pos.Store.
type Store interface {
	SnapshotQueue() []pos.QueueEntry
	PruneQueue(sent []int64) error
	ApplyPull(pull pos.PullData) error
}

// WorkerOption configures a Worker at construction.
type WorkerOption func(*Worker)

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) WorkerOption {
	return func(w *Worker) { w.interval = d }
}

// WithTimeout overrides the per-attempt deadline.
func WithTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) { w.timeout = d }
}

// NewWorker creates a worker draining store through client.
func NewWorker(store Store, client *Client, opts ...WorkerOption) *Worker {
	w := &Worker{
		store:    store,
		client:   client,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the sync loop: an immediate pull and drain cycle, then one
// cycle per tick. Calling Start again is a no-op.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		w.started.Store(true)
		go w.loop()
	})
}

// Stop shuts the loop down and waits for it to exit. Idempotent; returns
// immediately when the loop was never started.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	if !w.started.Load() {
		return
	}
	<-w.done
}

func (w *Worker) loop() {
	defer close(w.done)

	// Fetch reference data on every startup, queued changes or not.
	w.PullNow()
	w.SyncNow()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.SyncNow()
		}
	}
}

// SyncNow runs one drain cycle: snapshot the queue, push it, prune the
// acknowledged entries, then pull. An empty queue skips the cycle entirely.
func (w *Worker) SyncNow() {
	snapshot := w.store.SnapshotQueue()
	if len(snapshot) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	err := w.client.Push(ctx, snapshot)
	cancel()
	if err != nil {
		// Server unreachable or rejecting; the queue stays intact and
		// the next tick retries.
		slog.Debug("sync push failed, will retry", "entries", len(snapshot), "error", err)
		return
	}

	sent := make([]int64, len(snapshot))
	for i, e := range snapshot {
		sent[i] = e.TS
	}
	if err := w.store.PruneQueue(sent); err != nil {
		slog.Error("prune acknowledged queue entries", "error", err)
		return
	}
	slog.Info("sync push acknowledged", "entries", len(snapshot))

	w.PullNow()
}

// PullNow fetches reference data once and merges it into the store.
func (w *Worker) PullNow() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	data, err := w.client.Pull(ctx)
	cancel()
	if err != nil {
		slog.Debug("sync pull failed, will retry", "error", err)
		return
	}
	if err := w.store.ApplyPull(data); err != nil {
		slog.Error("apply pulled reference data", "error", err)
	}
}
