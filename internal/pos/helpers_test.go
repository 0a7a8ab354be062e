package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clearpond/kassa/internal/storage"
	"github.com/clearpond/kassa/internal/testutil"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestStore opens a store over a fresh memory backend with a
// deterministic clock advancing one second per call.
func newTestStore(t *testing.T, opts ...Option) (*Store, *storage.MemoryBackend) {
	t.Helper()

	backend := storage.NewMemoryBackend()
	clock := testutil.NewClock(testEpoch, time.Second)
	opts = append([]Option{WithClock(clock.Now)}, opts...)

	s, err := Open(backend, opts...)
	require.NoError(t, err)
	return s, backend
}

// poolItems is a typical two-line basket used across tests.
func poolItems() []ItemInput {
	return []ItemInput{
		{ServiceID: 1, ServiceName: "Pool pass", ServicePrice: 100, Quantity: 2},
		{ServiceID: 2, ServiceName: "Towel", ServicePrice: 50, Quantity: 1},
	}
}
