// internal/wizard/progress.go
package wizard

import (
	"sync"
	"time"
)

// The matching animation is cosmetic: it reproduces the original product's
// perceived latency (a few seconds of advancing percentage, then a short
// pause) without any real computation behind it. The increments are fixed
// rather than random so the total duration is deterministic, and the whole
// sequence can be cancelled so no timer outlives its owner.
const (
	progressTick      = 300 * time.Millisecond
	progressIncrement = 13
	progressPause     = 800 * time.Millisecond
)

type Progress struct {
	mu      sync.Mutex
	percent int

	tick      time.Duration
	increment int
	pause     time.Duration

	quit     chan struct{}
	stopOnce sync.Once

	onComplete func()
}

func NewProgress(onComplete func()) *Progress {
	return &Progress{
		tick:       progressTick,
		increment:  progressIncrement,
		pause:      progressPause,
		quit:       make(chan struct{}),
		onComplete: onComplete,
	}
}

func (p *Progress) Start() {
	go p.run()
}

func (p *Progress) run() {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.percent += p.increment
			if p.percent >= 100 {
				p.percent = 100
				p.mu.Unlock()
				p.finish()
				return
			}
			p.mu.Unlock()
		}
	}
}

func (p *Progress) finish() {
	select {
	case <-p.quit:
	case <-time.After(p.pause):
		if p.onComplete != nil {
			p.onComplete()
		}
	}
}

func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent
}

// Stop cancels the sequence; the completion callback will not fire. Safe to
// call more than once and after completion.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}
