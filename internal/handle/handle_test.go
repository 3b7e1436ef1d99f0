package handle

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type widget struct {
	name string
}

type gadget struct{}

// mustViolate runs fn and returns the *Violation it panics with.
func mustViolate(t *testing.T, fn func()) *Violation {
	t.Helper()
	var got *Violation
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic, got none")
			}
			err, ok := r.(error)
			if !ok || !errors.As(err, &got) {
				t.Fatalf("expected *Violation panic, got %T: %v", r, r)
			}
		}()
		fn()
	}()
	return got
}

func TestNew_IssuesDistinctNonZeroHandles(t *testing.T) {
	r := NewRegistry()
	a := New(r, &widget{name: "a"})
	b := New(r, &widget{name: "b"})
	if a == None || b == None {
		t.Fatalf("handles must not be the sentinel: %d, %d", a, b)
	}
	if a == b {
		t.Fatalf("expected distinct handles, got %d twice", a)
	}
	if r.Live() != 2 {
		t.Errorf("live = %d, want 2", r.Live())
	}
}

func TestMutable_MutatesInPlace(t *testing.T) {
	r := NewRegistry()
	h := New(r, &widget{name: "before"})
	With(r, h, func(w *widget) { w.name = "after" })
	if got := Mutable[widget](r, h).name; got != "after" {
		t.Errorf("name = %q, want %q", got, "after")
	}
}

func TestConsume_TransfersOwnership(t *testing.T) {
	r := NewRegistry()
	h := New(r, &widget{name: "moved"})
	w := Consume[widget](r, h)
	if w.name != "moved" {
		t.Errorf("name = %q, want %q", w.name, "moved")
	}
	if r.Live() != 0 {
		t.Errorf("live = %d after consume, want 0", r.Live())
	}
	v := mustViolate(t, func() { Mutable[widget](r, h) })
	if !strings.Contains(v.Reason, "already destroyed or consumed") {
		t.Errorf("reason = %q", v.Reason)
	}
}

func TestDestroy_ThenUse_Panics(t *testing.T) {
	r := NewRegistry()
	h := New(r, &widget{})
	Destroy[widget](r, h)

	ops := map[string]func(){
		"mutate":  func() { Mutable[widget](r, h) },
		"destroy": func() { Destroy[widget](r, h) },
		"consume": func() { Consume[widget](r, h) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			v := mustViolate(t, op)
			if v.Op != name {
				t.Errorf("op = %q, want %q", v.Op, name)
			}
			if v.Handle != h {
				t.Errorf("handle = %d, want %d", v.Handle, h)
			}
		})
	}
}

func TestNullAndUnknownHandles_Panic(t *testing.T) {
	r := NewRegistry()
	v := mustViolate(t, func() { Mutable[widget](r, None) })
	if v.Reason != "null handle" {
		t.Errorf("reason = %q, want null handle", v.Reason)
	}
	v = mustViolate(t, func() { Mutable[widget](r, 9999) })
	if v.Reason != "unknown handle" {
		t.Errorf("reason = %q, want unknown handle", v.Reason)
	}
}

func TestWrongType_Panics(t *testing.T) {
	r := NewRegistry()
	h := New(r, &widget{})
	v := mustViolate(t, func() { Consume[gadget](r, h) })
	if v.Expected != "handle.gadget" || v.Actual != "handle.widget" {
		t.Errorf("got expected=%q actual=%q", v.Expected, v.Actual)
	}
	// The failed consume must not have released the object.
	if r.Live() != 1 {
		t.Errorf("live = %d, want 1", r.Live())
	}
}

func TestHandlesAreNeverReused(t *testing.T) {
	r := NewRegistry()
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := New(r, &widget{})
		if seen[h] {
			t.Fatalf("handle %d issued twice", h)
		}
		seen[h] = true
		Destroy[widget](r, h)
	}
}

func TestNew_ConcurrentCreation(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	handles := make([]Handle, 64)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = New(r, &widget{})
		}(i)
	}
	wg.Wait()
	seen := make(map[Handle]bool)
	for _, h := range handles {
		if seen[h] {
			t.Fatalf("duplicate handle %d", h)
		}
		seen[h] = true
	}
	if r.Live() != len(handles) {
		t.Errorf("live = %d, want %d", r.Live(), len(handles))
	}
}

func TestKind(t *testing.T) {
	r := NewRegistry()
	h := New(r, &widget{})
	if got := r.Kind(h); got != "handle.widget" {
		t.Errorf("Kind = %q, want handle.widget", got)
	}
	if got := r.Kind(12345); got != "" {
		t.Errorf("Kind of unknown = %q, want empty", got)
	}
}

func TestValue(t *testing.T) {
	r := NewRegistry()
	w := &widget{name: "a"}
	h := New(r, w)
	if got, ok := Value(r, h).(*widget); !ok || got != w {
		t.Errorf("Value = %v, want %p", got, w)
	}
	Destroy[widget](r, h)
	v := mustViolate(t, func() { Value(r, h) })
	if v.Op != "inspect" {
		t.Errorf("op = %q", v.Op)
	}
}
