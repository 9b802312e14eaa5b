// Package clock provides the frame and timer scheduling used by the grid
// controller. Everything scheduled through a Scheduler runs on the goroutine
// that drives it, so callbacks never race with the render loop.
package clock

import (
	"container/heap"
	"time"
)

// Cancel stops a pending timer or frame request. Calling it more than once,
// or after the callback ran, is a no-op.
type Cancel func()

// Scheduler is the frame-scheduling primitive the controller runs on.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// AfterFunc runs fn once, d after Now.
	AfterFunc(d time.Duration, fn func()) Cancel
	// RequestFrame runs fn once on the next displayed frame. Frames are not
	// serviced while the host is hidden, so fn may be deferred indefinitely.
	RequestFrame(fn func(now time.Time)) Cancel
}

type timer struct {
	at        time.Time
	seq       uint64
	fn        func()
	cancelled bool
	index     int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

type frameRequest struct {
	fn        func(now time.Time)
	cancelled bool
}

// queue holds pending timers and frame requests for both schedulers.
type queue struct {
	timers timerHeap
	frames []*frameRequest
	spare  []*frameRequest
	seq    uint64
}

func (q *queue) addTimer(at time.Time, fn func()) Cancel {
	q.seq++
	t := &timer{at: at, seq: q.seq, fn: fn}
	heap.Push(&q.timers, t)
	return func() {
		if t.cancelled || t.index < 0 {
			return
		}
		t.cancelled = true
		heap.Remove(&q.timers, t.index)
	}
}

func (q *queue) addFrame(fn func(now time.Time)) Cancel {
	r := &frameRequest{fn: fn}
	q.frames = append(q.frames, r)
	return func() { r.cancelled = true }
}

// nextDue pops the earliest timer due at or before now.
func (q *queue) nextDue(now time.Time) *timer {
	if len(q.timers) == 0 || q.timers[0].at.After(now) {
		return nil
	}
	return heap.Pop(&q.timers).(*timer)
}

// runFrames services every frame request made before the call. Requests made
// from inside a callback wait for the next frame.
func (q *queue) runFrames(now time.Time) int {
	if len(q.frames) == 0 {
		return 0
	}
	batch := q.frames
	q.frames = q.spare[:0]

	ran := 0
	for i, r := range batch {
		batch[i] = nil
		if r.cancelled {
			continue
		}
		r.cancelled = true
		r.fn(now)
		ran++
	}
	q.spare = batch[:0]
	return ran
}

func (q *queue) pendingFrames() int {
	n := 0
	for _, r := range q.frames {
		if !r.cancelled {
			n++
		}
	}
	return n
}
