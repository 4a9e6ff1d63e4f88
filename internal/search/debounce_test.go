package search

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_RunsOnceAfterBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Value
	for _, v := range []string{"a", "ab", "abc"} {
		v := v
		d.Trigger(func() {
			calls.Add(1)
			last.Store(v)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
	if got := last.Load(); got != "abc" {
		t.Errorf("last = %v, want abc", got)
	}
}

func TestDebouncer_WaitsForQuietInterval(t *testing.T) {
	d := NewDebouncer(80 * time.Millisecond)

	fired := make(chan time.Time, 1)
	start := time.Now()
	d.Trigger(func() { fired <- time.Now() })

	select {
	case at := <-fired:
		if elapsed := at.Sub(start); elapsed < 80*time.Millisecond {
			t.Errorf("fired after %v, want >= 80ms", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced call")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	if !d.Pending() {
		t.Error("Pending() = false after Trigger")
	}
	d.Cancel()
	if d.Pending() {
		t.Error("Pending() = true after Cancel")
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestDebouncer_StopDisablesTrigger(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after Stop")
	}
}
