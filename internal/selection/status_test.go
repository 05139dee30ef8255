package selection

import (
	"errors"
	"testing"
)

// assertSingleInProgress checks that pending is set iff exactly one item is
// InProgress, and that it is that item.
func assertSingleInProgress(t *testing.T, l *List) {
	t.Helper()
	count, at := 0, -1
	for i, it := range l.Items() {
		if it.Status == InProgress {
			count++
			at = i
		}
	}
	p, busy := l.Pending()
	switch {
	case count > 1:
		t.Fatalf("%d items InProgress, want at most 1", count)
	case count == 1 && (!busy || p != at):
		t.Fatalf("item %d InProgress but pending = %d, %v", at, p, busy)
	case count == 0 && busy:
		t.Fatalf("pending = %d with no item InProgress", p)
	}
}

func TestStatusString(t *testing.T) {
	if Idle.String() != "idle" || InProgress.String() != "in progress" {
		t.Errorf("unexpected status strings %q, %q", Idle, InProgress)
	}
	if Status(9).String() != "unknown" {
		t.Errorf("Status(9).String() = %q", Status(9))
	}
}

func TestActivate_NoSelection(t *testing.T) {
	l := newTestList(2)
	if _, _, err := l.Activate(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Activate() error = %v, want ErrNoSelection", err)
	}
	assertSingleInProgress(t, l)
}

func TestActivate_SetsPending(t *testing.T) {
	l := newTestList(3)
	l.SelectFirst()
	l.SelectNext()

	i, it, err := l.Activate()
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if i != 1 || it.Tag != "b" {
		t.Errorf("Activate() = %d, %+v; want index 1 tag b", i, it)
	}
	if l.Item(1).Status != InProgress {
		t.Errorf("Item(1).Status = %v, want InProgress", l.Item(1).Status)
	}
	if p, ok := l.Pending(); !ok || p != 1 {
		t.Errorf("Pending() = %d, %v; want 1, true", p, ok)
	}
	assertSingleInProgress(t, l)
}

func TestActivate_RejectedWhileBusy(t *testing.T) {
	l := newTestList(3)
	l.SelectFirst()
	if _, _, err := l.Activate(); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	// Navigation keeps working while busy.
	l.SelectNext()
	if got := cursorOf(t, l); got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}

	if _, _, err := l.Activate(); !errors.Is(err, ErrBusy) {
		t.Errorf("second Activate() error = %v, want ErrBusy", err)
	}
	// Same item again is also rejected.
	l.SelectFirst()
	if _, _, err := l.Activate(); !errors.Is(err, ErrBusy) {
		t.Errorf("re-Activate() error = %v, want ErrBusy", err)
	}
	if l.Item(1).Status != Idle {
		t.Error("rejected activation must not change item status")
	}
	assertSingleInProgress(t, l)
}

func TestComplete(t *testing.T) {
	l := newTestList(3)
	l.SelectLast()
	i, _, err := l.Activate()
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	if err := l.Complete(0); !errors.Is(err, ErrNotPending) {
		t.Errorf("Complete(wrong index) error = %v, want ErrNotPending", err)
	}
	assertSingleInProgress(t, l)

	if err := l.Complete(i); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if l.Item(i).Status != Idle {
		t.Errorf("Item(%d).Status = %v, want Idle", i, l.Item(i).Status)
	}
	if l.Busy() {
		t.Error("Busy() after Complete() = true")
	}
	assertSingleInProgress(t, l)

	if err := l.Complete(i); !errors.Is(err, ErrNotPending) {
		t.Errorf("second Complete() error = %v, want ErrNotPending", err)
	}
}

func TestActivateAfterComplete(t *testing.T) {
	l := newTestList(2)
	l.SelectFirst()
	i, _, _ := l.Activate()
	_ = l.Complete(i)

	l.SelectNext()
	j, it, err := l.Activate()
	if err != nil {
		t.Fatalf("Activate() after Complete() error = %v", err)
	}
	if j != 1 || it.Tag != "b" {
		t.Errorf("Activate() = %d, %+v", j, it)
	}
	assertSingleInProgress(t, l)
}

func TestFromItemsResetsStatus(t *testing.T) {
	l := FromItems([]Item{{Tag: "a", Status: InProgress}})
	if l.Item(0).Status != Idle {
		t.Error("FromItems() should reset status to Idle")
	}
	assertSingleInProgress(t, l)
}
