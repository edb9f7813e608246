package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestProfiler_ReportsOncePerInterval(t *testing.T) {
	clock := time.Unix(0, 0)
	var buf bytes.Buffer
	p := NewProfiler(
		WithLogger(zerolog.New(&buf)),
		WithUpdateInterval(time.Second),
		withClock(func() time.Time { return clock }),
	)

	for i := 0; i < 24; i++ {
		clock = clock.Add(40 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, buf.Len())

	clock = clock.Add(40 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.InDelta(t, 25.0, p.Last().FPS, 0.01)
	assert.Greater(t, p.Last().SysMB, 0.0)
	assert.Contains(t, buf.String(), `"fps":`)

	// The frame counter restarts after a report.
	clock = clock.Add(time.Second)
	assert.True(t, p.Tick())
	assert.InDelta(t, 1.0, p.Last().FPS, 0.01)
}
