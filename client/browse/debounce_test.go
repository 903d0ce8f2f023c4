package browse

import (
	"testing"
	"time"
)

func TestDebouncerEmitsLastValue(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	d.Set("k")
	d.Set("ka")
	d.Set("kad")
	d.Set("kada")

	select {
	case got := <-d.C():
		if got != "kada" {
			t.Fatalf("expected final value, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected an emission")
	}

	// No further emissions for the burst above.
	select {
	case got := <-d.C():
		t.Fatalf("unexpected extra emission %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerRestartsTimer(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Set("first")
	time.Sleep(30 * time.Millisecond)
	d.Set("second")

	start := time.Now()
	select {
	case got := <-d.C():
		if got != "second" {
			t.Fatalf("expected restarted value, got %q", got)
		}
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Fatalf("emitted too early: %s", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected an emission")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	d.Set("value")
	d.Stop()

	select {
	case got := <-d.C():
		t.Fatalf("expected no emission after Stop, got %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}
