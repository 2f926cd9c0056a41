package execlog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Reporter emits periodic load-progress lines to a writer. Observation
// is fire-and-forget: workers record snapshots under a mutex and a
// ticker goroutine emits them, so parsing never blocks on the writer.
type Reporter struct {
	enabled  bool
	interval time.Duration
	w        io.Writer

	mu      sync.Mutex
	log     string
	records int

	done chan struct{}
	once sync.Once
}

// NewReporter returns a reporter writing to w every interval. A nil
// writer or non-positive interval disables it.
func NewReporter(w io.Writer, interval time.Duration) *Reporter {
	if w == nil || interval <= 0 {
		return &Reporter{enabled: false}
	}
	return &Reporter{
		enabled:  true,
		interval: interval,
		w:        w,
		done:     make(chan struct{}),
	}
}

// Start launches the emit loop. No-op when disabled.
func (r *Reporter) Start() {
	if r == nil || !r.enabled {
		return
	}
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.emit()
			case <-r.done:
				return
			}
		}
	}()
}

// Stop ends the emit loop after a final snapshot.
func (r *Reporter) Stop() {
	if r == nil || !r.enabled {
		return
	}
	r.once.Do(func() {
		r.emit()
		close(r.done)
	})
}

// Observe records the latest (log, records parsed) snapshot.
func (r *Reporter) Observe(log string, records int) {
	if r == nil || !r.enabled {
		return
	}
	r.mu.Lock()
	r.log = log
	r.records = records
	r.mu.Unlock()
}

func (r *Reporter) emit() {
	r.mu.Lock()
	log := r.log
	records := r.records
	r.mu.Unlock()
	if log == "" {
		return
	}
	_, _ = fmt.Fprintf(r.w, "progress log=%s records=%d\n", log, records)
}
