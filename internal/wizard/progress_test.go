// internal/wizard/progress_test.go
package wizard

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressRunsToCompletion(t *testing.T) {
	var completed atomic.Bool
	p := NewProgress(func() { completed.Store(true) })
	p.tick = time.Millisecond
	p.pause = time.Millisecond

	p.Start()

	assert.Eventually(t, func() bool {
		return completed.Load()
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, 100, p.Percent(), "percent clamps at 100")
}

func TestProgressStopBeforeCompletion(t *testing.T) {
	var completed atomic.Bool
	p := NewProgress(func() { completed.Store(true) })
	p.tick = time.Millisecond
	p.pause = time.Hour

	p.Start()
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	p.Stop() // idempotent

	time.Sleep(20 * time.Millisecond)
	assert.False(t, completed.Load())
}

func TestProgressDuration(t *testing.T) {
	// 8 ticks to pass 100 at +13 each, plus the pause.
	ticks := 0
	for pct := 0; pct < 100; pct += progressIncrement {
		ticks++
	}
	total := time.Duration(ticks)*progressTick + progressPause

	assert.GreaterOrEqual(t, total, 2*time.Second)
	assert.LessOrEqual(t, total, 4*time.Second)
}
