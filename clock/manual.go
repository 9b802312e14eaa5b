package clock

import "time"

// Manual is a Scheduler driven by explicit calls, for deterministic tests and
// headless runs. Time only moves when Advance or Step is called.
type Manual struct {
	now    time.Time
	q      queue
	hidden bool
	frames int
}

// NewManual creates a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Cancel {
	return m.q.addTimer(m.now.Add(d), fn)
}

// RequestFrame queues fn for the next Frame call.
func (m *Manual) RequestFrame(fn func(now time.Time)) Cancel {
	return m.q.addFrame(fn)
}

// Advance moves virtual time forward by d, firing due timers in deadline
// order. Now reports each timer's deadline while it runs.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.q.nextDue(target)
		if t == nil {
			break
		}
		if t.at.After(m.now) {
			m.now = t.at
		}
		t.fn()
	}
	m.now = target
}

// Frame services pending frame requests, unless the host is hidden.
// It returns the number of callbacks run.
func (m *Manual) Frame() int {
	if m.hidden {
		return 0
	}
	m.frames++
	return m.q.runFrames(m.now)
}

// Step advances by d and then runs one frame.
func (m *Manual) Step(d time.Duration) int {
	m.Advance(d)
	return m.Frame()
}

// Run steps n frames of length d.
func (m *Manual) Run(n int, d time.Duration) {
	for i := 0; i < n; i++ {
		m.Step(d)
	}
}

// SetVisible simulates the host page being shown or hidden.
func (m *Manual) SetVisible(visible bool) {
	m.hidden = !visible
}

// Frames returns how many frames have been serviced.
func (m *Manual) Frames() int {
	return m.frames
}

// Pending returns the number of live timers and frame requests.
func (m *Manual) Pending() (timers, frames int) {
	return len(m.q.timers), m.q.pendingFrames()
}
