package clock

import (
	"context"
	"time"
)

// Realtime is a Scheduler on the wall clock. The host calls Pump once per
// display refresh (after vsync), or hands control to Run for hosts without a
// vsync-locked loop.
type Realtime struct {
	q       queue
	visible bool
}

// NewRealtime creates a realtime scheduler in the visible state.
func NewRealtime() *Realtime {
	return &Realtime{visible: true}
}

// Now returns the wall clock time.
func (r *Realtime) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn at least d from now. It fires on the next Pump
// after its deadline, on the pumping goroutine.
func (r *Realtime) AfterFunc(d time.Duration, fn func()) Cancel {
	return r.q.addTimer(time.Now().Add(d), fn)
}

// RequestFrame queues fn for the next visible Pump.
func (r *Realtime) RequestFrame(fn func(now time.Time)) Cancel {
	return r.q.addFrame(fn)
}

// SetVisible records whether the host is currently shown; Run uses it.
func (r *Realtime) SetVisible(visible bool) {
	r.visible = visible
}

// Pump fires due timers, then services frame requests if visible.
// It returns the number of frame callbacks run.
func (r *Realtime) Pump(visible bool) int {
	now := time.Now()
	for {
		t := r.q.nextDue(now)
		if t == nil {
			break
		}
		t.fn()
	}
	if !visible {
		return 0
	}
	return r.q.runFrames(now)
}

// Run pumps at fps until ctx is done. Functions received on events run on
// the same goroutine between pumps, which is how hosts with their own input
// goroutine hand events to the controller.
func (r *Realtime) Run(ctx context.Context, fps int, events <-chan func()) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			ev()
		case <-ticker.C:
			r.Pump(r.visible)
		}
	}
}
