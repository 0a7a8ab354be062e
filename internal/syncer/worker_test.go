package syncer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearpond/kassa/internal/pos"
	"github.com/clearpond/kassa/internal/storage"
	"github.com/clearpond/kassa/internal/testutil"
)

// newSyncedStore builds a store over a memory backend with a deterministic
// clock, pre-loaded with n queued service additions.
func newSyncedStore(t *testing.T, n int) *pos.Store {
	t.Helper()

	clock := testutil.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), time.Second)
	s, err := pos.Open(storage.NewMemoryBackend(), pos.WithClock(clock.Now))
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		_, err := s.AddService("svc", float64(i), "")
		require.NoError(t, err)
	}
	return s
}

func TestSyncNow_EmptyQueueSkipsPush(t *testing.T) {
	var pushes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
	}))
	defer srv.Close()

	store := newSyncedStore(t, 0)
	w := NewWorker(store, NewClient(srv.URL))

	w.SyncNow()
	assert.Zero(t, pushes.Load())
}

func TestSyncNow_SuccessPrunesAndPulls(t *testing.T) {
	var pulled atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sync/push":
			var req struct {
				Items []json.RawMessage `json:"items"`
			}
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Len(t, req.Items, 3)
			w.WriteHeader(http.StatusOK)
		case "/sync/pull":
			pulled.Store(true)
			w.Write([]byte(`{"settings":{"pulled":"yes"}}`))
		}
	}))
	defer srv.Close()

	store := newSyncedStore(t, 3)
	w := NewWorker(store, NewClient(srv.URL))

	w.SyncNow()

	assert.Zero(t, store.QueueLen(), "acknowledged entries pruned")
	assert.True(t, pulled.Load(), "pull follows a successful push")
	assert.Equal(t, "yes", store.Setting("pulled"))
}

func TestSyncNow_FailureLeavesQueueUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	store := newSyncedStore(t, 4)
	w := NewWorker(store, NewClient(srv.URL))

	w.SyncNow()
	assert.Equal(t, 4, store.QueueLen())

	// Retry against a healthy server drains it
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sync/pull" {
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	w2 := NewWorker(store, NewClient(healthy.URL))
	w2.SyncNow()
	assert.Zero(t, store.QueueLen())
}

func TestSyncNow_MutationsDuringFlightSurvive(t *testing.T) {
	store := newSyncedStore(t, 2)

	// While the push is in flight, two more changes land in the queue.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sync/push" {
			_, err := store.AddService("in-flight-1", 1, "")
			require.NoError(t, err)
			_, err = store.AddService("in-flight-2", 2, "")
			require.NoError(t, err)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	w := NewWorker(store, NewClient(srv.URL))
	w.SyncNow()

	assert.Equal(t, 2, store.QueueLen(), "entries appended mid-flight stay queued")
}

func TestSyncNow_AttemptTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block // hang until the test ends
	}))
	defer srv.Close()
	defer close(block)

	store := newSyncedStore(t, 1)
	w := NewWorker(store, NewClient(srv.URL), WithTimeout(50*time.Millisecond))

	start := time.Now()
	w.SyncNow()
	assert.Less(t, time.Since(start), 5*time.Second, "a hung call is bounded by the attempt timeout")
	assert.Equal(t, 1, store.QueueLen())
}

func TestWorker_StartStopLifecycle(t *testing.T) {
	var pushes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sync/push" {
			pushes.Add(1)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := newSyncedStore(t, 1)
	w := NewWorker(store, NewClient(srv.URL), WithInterval(10*time.Millisecond))

	w.Start()

	deadline := time.After(2 * time.Second)
	for store.QueueLen() > 0 {
		select {
		case <-deadline:
			t.Fatal("queue never drained")
		case <-time.After(5 * time.Millisecond):
		}
	}

	w.Stop()
	assert.GreaterOrEqual(t, pushes.Load(), int64(1))

	// Stop is idempotent
	w.Stop()
}

func TestWorker_StopWithoutStartReturns(t *testing.T) {
	store := newSyncedStore(t, 0)
	w := NewWorker(store, NewClient("http://127.0.0.1:1"))

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop without a prior Start did not return")
	}

	// Still idempotent afterwards
	w.Stop()
}

func TestWorker_StartupPullRunsWithEmptyQueue(t *testing.T) {
	var pulls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sync/pull" {
			pulls.Add(1)
			w.Write([]byte(`{"settings":{"boot":"1"}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newSyncedStore(t, 0)
	w := NewWorker(store, NewClient(srv.URL), WithInterval(time.Hour))

	w.Start()

	deadline := time.After(2 * time.Second)
	for pulls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup pull never happened")
		case <-time.After(5 * time.Millisecond):
		}
	}
	w.Stop()

	assert.Equal(t, "1", store.Setting("boot"))
}
