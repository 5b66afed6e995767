// internal/progress/tracker.go
package progress

import (
	"io"
	"time"
)

// DefaultInterval is the minimum time between terminal flushes.
const DefaultInterval = 100 * time.Millisecond

type flusher interface{ Flush() error }

// Tracker redraws a Bar after each processed item. Lines are written on
// every step; if the writer buffers (has Flush), it is flushed at most
// once per DefaultInterval and always on Finish.
type Tracker struct {
	w        io.Writer
	info     string
	total    int
	done     int
	start    time.Time
	now      func() time.Time
	interval time.Duration
	lastP    float64
	last     time.Time
	err      error
}

// NewTracker starts the clock. A nil w gives a tracker that only counts.
func NewTracker(w io.Writer, info string, total int) *Tracker {
	return newTracker(w, info, total, time.Now)
}

func newTracker(w io.Writer, info string, total int, now func() time.Time) *Tracker {
	if total < 0 {
		total = 0
	}
	t := &Tracker{w: w, info: info, total: total, now: now, interval: DefaultInterval, lastP: -1}
	t.start = now()
	return t
}

// Done is the number of steps taken so far.
func (t *Tracker) Done() int { return t.done }

// Total is the current (possibly raised) item count.
func (t *Tracker) Total() int { return t.total }

// Elapsed is the time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration { return t.now().Sub(t.start) }

// Err returns the first write error; drawing stops after it.
func (t *Tracker) Err() error { return t.err }

// Step records one processed item and redraws.
func (t *Tracker) Step() {
	t.done++
	if t.done > t.total {
		t.total = t.done
	}
	now := t.now()
	p := float64(t.done) / float64(t.total)
	elapsed := now.Sub(t.start).Seconds()
	eta := elapsed / float64(t.done) * float64(t.total-t.done)
	t.draw(p, eta)
	if now.Sub(t.last) >= t.interval {
		t.flush()
		t.last = now
	}
}

// Finish draws the 100% line if it has not been drawn, then flushes.
func (t *Tracker) Finish() {
	if t.lastP != 1.0 {
		t.draw(1.0, 0)
	}
	t.flush()
}

func (t *Tracker) draw(p, eta float64) {
	t.lastP = p
	if t.w == nil || t.err != nil {
		return
	}
	if _, err := io.WriteString(t.w, Bar(p, t.info, eta)); err != nil {
		t.err = err
	}
}

func (t *Tracker) flush() {
	if t.err != nil {
		return
	}
	if f, ok := t.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			t.err = err
		}
	}
}
