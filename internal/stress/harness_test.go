package stress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixturectl/internal/fixture"
	"fixturectl/pkg/logging"
)

// syncBuffer lets the test read the log while workers are done writing
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestHarness_RunsEveryIteration(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int]bool)

	h := Harness{Seed: 7, MaxDelay: time.Millisecond, Workers: 8}
	report, err := h.Run(context.Background(), 100, func(ctx context.Context, i int) error {
		mu.Lock()
		defer mu.Unlock()
		seen[i] = true
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), report.Seed)
	assert.Equal(t, int64(100), report.Completed)
	assert.Len(t, seen, 100)
	assert.Contains(t, report.String(), "seed=7")
}

func TestHarness_WallClockSeedIsReported(t *testing.T) {
	report, err := Harness{}.Run(context.Background(), 3, func(ctx context.Context, i int) error { return nil })
	require.NoError(t, err)
	assert.NotZero(t, report.Seed)
}

func TestHarness_FirstErrorStopsRun(t *testing.T) {
	boom := errors.New("boom")
	h := Harness{Seed: 1, Workers: 1}

	report, err := h.Run(context.Background(), 50, func(ctx context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "iteration 3 (seed 1)")
	assert.Less(t, report.Completed, int64(50))
}

func TestHarness_LoggerTarget(t *testing.T) {
	out := &syncBuffer{}
	logging.InitForCLI(logging.LevelDebug, out)
	t.Cleanup(func() { logging.InitForCLI(logging.LevelInfo, &bytes.Buffer{}) })

	h := Harness{Seed: 42, MaxDelay: 200 * time.Microsecond, Workers: 16}
	_, err := h.Run(context.Background(), 300, LoggerTarget("Stress"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	count := 0
	for _, line := range lines {
		// every line must be a complete record, never two writes interleaved
		require.True(t, strings.HasPrefix(line, "time="), line)
		if strings.Contains(line, "stress iteration") {
			count++
		}
	}
	assert.Equal(t, 300, count)
}

func TestHarness_RegistryTarget(t *testing.T) {
	reg := fixture.NewRegistry()
	h := Harness{Seed: 99, MaxDelay: 100 * time.Microsecond, Workers: 12}

	_, err := h.Run(context.Background(), 200, RegistryTarget(reg, "Stress"))
	require.NoError(t, err)
	assert.Equal(t, 200, reg.Len())

	for i := 0; i < 200; i++ {
		_, ok := reg.Lookup(fmt.Sprintf("Stress%d", i))
		assert.True(t, ok)
	}
}
