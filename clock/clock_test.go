package clock

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualTimersFireInOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	var at []time.Duration

	record := func(name string) func() {
		return func() {
			order = append(order, name)
			at = append(at, m.Now().Sub(epoch))
		}
	}

	m.AfterFunc(300*time.Millisecond, record("c"))
	m.AfterFunc(100*time.Millisecond, record("a"))
	m.AfterFunc(200*time.Millisecond, record("b"))
	m.AfterFunc(200*time.Millisecond, record("b2"))

	m.Advance(150 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after 150ms fired %v, want [a]", order)
	}

	m.Advance(time.Second)
	want := []string{"a", "b", "b2", "c"}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
	if at[1] != 200*time.Millisecond {
		t.Errorf("Now() during timer = %v, want 200ms", at[1])
	}
	if got := m.Now().Sub(epoch); got != 1150*time.Millisecond {
		t.Errorf("Now() = %v after advances, want 1.15s", got)
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	cancel := m.AfterFunc(time.Second, func() { fired = true })
	cancel()
	cancel()
	m.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}

	ran := false
	cancelFrame := m.RequestFrame(func(time.Time) { ran = true })
	cancelFrame()
	if n := m.Frame(); n != 0 || ran {
		t.Errorf("cancelled frame ran (n=%d)", n)
	}
}

func TestManualTimerScheduledFromTimer(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		m.AfterFunc(100*time.Millisecond, tick)
	}
	m.AfterFunc(100*time.Millisecond, tick)

	m.Advance(550 * time.Millisecond)
	if count != 5 {
		t.Errorf("repeating timer fired %d times in 550ms, want 5", count)
	}
}

func TestManualFramesDeferredWhileHidden(t *testing.T) {
	m := NewManual(epoch)
	ran := 0
	m.RequestFrame(func(time.Time) { ran++ })

	m.SetVisible(false)
	for i := 0; i < 10; i++ {
		m.Step(16 * time.Millisecond)
	}
	if ran != 0 {
		t.Fatalf("frame ran %d times while hidden", ran)
	}
	if _, frames := m.Pending(); frames != 1 {
		t.Errorf("pending frames = %d, want 1", frames)
	}

	m.SetVisible(true)
	m.Step(16 * time.Millisecond)
	if ran != 1 {
		t.Errorf("frame ran %d times after becoming visible, want 1", ran)
	}
}

func TestManualFrameRequestedInsideFrameWaits(t *testing.T) {
	m := NewManual(epoch)
	ticks := 0
	var loop func(time.Time)
	loop = func(time.Time) {
		ticks++
		m.RequestFrame(loop)
	}
	m.RequestFrame(loop)

	m.Run(5, 16*time.Millisecond)
	if ticks != 5 {
		t.Errorf("ticks = %d after 5 frames, want 5", ticks)
	}
	if m.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", m.Frames())
	}
}

func TestRealtimePump(t *testing.T) {
	r := NewRealtime()
	fired := false
	r.AfterFunc(0, func() { fired = true })
	later := false
	r.AfterFunc(time.Hour, func() { later = true })

	frames := 0
	r.RequestFrame(func(time.Time) { frames++ })

	if n := r.Pump(false); n != 0 {
		t.Errorf("hidden pump ran %d frames", n)
	}
	if !fired {
		t.Error("due timer did not fire on hidden pump")
	}
	if later {
		t.Error("future timer fired early")
	}

	if n := r.Pump(true); n != 1 || frames != 1 {
		t.Errorf("visible pump ran %d frames (counter %d), want 1", n, frames)
	}
}

func TestRealtimeRunStopsOnCancel(t *testing.T) {
	r := NewRealtime()
	ctx, cancel := context.WithCancel(context.Background())

	events := make(chan func(), 1)
	gotEvent := make(chan struct{})
	events <- func() { close(gotEvent) }

	framed := make(chan struct{})
	r.RequestFrame(func(time.Time) { close(framed) })

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, 120, events) }()

	select {
	case <-gotEvent:
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
	select {
	case <-framed:
	case <-time.After(2 * time.Second):
		t.Fatal("frame not serviced")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
