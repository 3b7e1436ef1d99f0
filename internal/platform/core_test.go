package platform

import (
	"errors"
	"sync"
	"testing"

	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/tree"
)

// stubTranslator names events after what triggered them so tests can check
// the core's bookkeeping without a real platform.
type stubTranslator struct{}

func (stubTranslator) Platform() string { return "stub" }

func (stubTranslator) Initial(t *tree.Tree) []Event {
	return []Event{{Platform: "stub", Name: "initial", Node: t.Root()}}
}

func (stubTranslator) Changes(res tree.Result, _ *tree.Tree) []Event {
	var out []Event
	for _, c := range res.Changes {
		out = append(out, Event{Platform: "stub", Name: string(c.Type), Node: c.ID})
	}
	return out
}

func (stubTranslator) Focus(f Focus, _ *tree.Tree) []Event {
	if !f.OK {
		return []Event{{Platform: "stub", Name: "blur"}}
	}
	return []Event{{Platform: "stub", Name: "focus", Node: f.ID}}
}

func buttonTree(label string) *model.TreeUpdate {
	root := model.NewNode(model.RoleWindow)
	root.AddChild(2)
	btn := model.NewNode(model.RoleButton)
	btn.SetLabel(label)
	btn.AddAction(model.ActionClick)
	u := model.NewTreeUpdate(2)
	u.AddNode(1, root)
	u.AddNode(2, btn)
	u.SetTree(1)
	return u
}

func relabel(label string) func() *model.TreeUpdate {
	return func() *model.TreeUpdate {
		btn := model.NewNode(model.RoleButton)
		btn.SetLabel(label)
		btn.AddAction(model.ActionClick)
		u := model.NewTreeUpdate(2)
		u.AddNode(2, btn)
		return u
	}
}

func names(b *EventBatch) []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.Events))
	for i, ev := range b.Events {
		out[i] = ev.Name
	}
	return out
}

func newTestCore(activation ActivationHandler, opts ...Option) (*Core, *Recorder) {
	rec := &Recorder{}
	opts = append([]Option{WithDispatcher(rec)}, opts...)
	return NewCore(stubTranslator{}, 0xbeef, activation, opts...), rec
}

func TestUpdateIfActive_InactiveNeverCallsSource(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return nil }))
	called := false
	batch, err := c.UpdateIfActive(func() *model.TreeUpdate {
		called = true
		return buttonTree("OK")
	})
	if err != nil {
		t.Fatalf("UpdateIfActive: %v", err)
	}
	if called {
		t.Error("source called while inactive")
	}
	if batch != nil {
		t.Errorf("expected no events, got %v", names(batch))
	}
	if c.State() != StateInactive {
		t.Errorf("state = %s", c.State())
	}
}

func TestActivate_WithTree(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if c.State() != StateActive {
		t.Fatalf("state = %s, want active", c.State())
	}
	els := c.Elements()
	if len(els) != 2 || els[1].Label != "OK" {
		t.Errorf("elements = %+v", els)
	}

	batch, err := c.UpdateIfActive(relabel("Okay"))
	if err != nil {
		t.Fatalf("UpdateIfActive: %v", err)
	}
	if got := names(batch); len(got) != 1 || got[0] != "changed" {
		t.Errorf("events = %v, want [changed]", got)
	}
}

func TestActivate_WhenActiveKeepsTree(t *testing.T) {
	calls := 0
	c, rec := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate {
		calls++
		return buttonTree("Initial")
	}))
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	batch, err := c.UpdateIfActive(relabel("Updated"))
	if err != nil {
		t.Fatalf("UpdateIfActive: %v", err)
	}
	batch.Raise()
	raised := len(rec.Events())

	if err := c.Activate(); err != nil {
		t.Fatalf("second Activate: %v", err)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
	if els := c.Elements(); len(els) != 2 || els[1].Label != "Updated" {
		t.Errorf("elements = %+v, want label Updated", els)
	}
	if got := len(rec.Events()); got != raised {
		t.Errorf("events after second Activate = %d, want %d", got, raised)
	}
	if c.State() != StateActive {
		t.Errorf("state = %s", c.State())
	}
}

func TestActivate_PlaceholderThenUpdate(t *testing.T) {
	c, rec := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return nil }))
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if c.State() != StatePlaceholder {
		t.Fatalf("state = %s, want placeholder", c.State())
	}
	if els := c.Elements(); els != nil {
		t.Errorf("placeholder should expose no elements, got %d", len(els))
	}

	batch, err := c.UpdateIfActive(func() *model.TreeUpdate { return buttonTree("OK") })
	if err != nil {
		t.Fatalf("UpdateIfActive: %v", err)
	}
	if c.State() != StateActive {
		t.Fatalf("state = %s, want active", c.State())
	}
	if got := names(batch); len(got) != 1 || got[0] != "initial" {
		t.Fatalf("events = %v, want [initial]", got)
	}
	batch.Raise()
	if evs := rec.Events(); len(evs) != 1 || evs[0].Node != 1 {
		t.Errorf("dispatched = %+v", evs)
	}
}

func TestActivate_InvalidInitialTree(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate {
		return model.NewTreeUpdate(1)
	}))
	if err := c.Activate(); !errors.Is(err, tree.ErrNoRoot) {
		t.Fatalf("err = %v, want ErrNoRoot", err)
	}
	if c.State() != StateInactive {
		t.Errorf("state = %s", c.State())
	}
}

func TestUpdateIfActive_NilUpdate(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	if err := c.Activate(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.UpdateIfActive(func() *model.TreeUpdate { return nil }); !errors.Is(err, ErrNilUpdate) {
		t.Errorf("err = %v, want ErrNilUpdate", err)
	}
}

func TestFocus_OnlyWhileHostFocused(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	if err := c.Activate(); err != nil {
		t.Fatal(err)
	}

	batch, err := c.UpdateViewFocusState(true)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(batch); len(got) != 1 || got[0] != "focus" || batch.Events[0].Node != 2 {
		t.Errorf("gain events = %+v", batch)
	}

	batch, _ = c.UpdateViewFocusState(true)
	if batch != nil {
		t.Errorf("repeat focus should be silent, got %v", names(batch))
	}

	batch, _ = c.UpdateViewFocusState(false)
	if got := names(batch); len(got) != 1 || got[0] != "blur" {
		t.Errorf("loss events = %v", got)
	}
	if c.HostFocused() {
		t.Error("HostFocused should be false")
	}
}

func TestFocus_RecordedWhileInactive(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	batch, err := c.UpdateViewFocusState(true)
	if err != nil || batch != nil {
		t.Fatalf("inactive focus: batch=%v err=%v", names(batch), err)
	}
	if !c.HostFocused() {
		t.Error("focus state not recorded")
	}
}

func TestFocus_MovesWithUpdate(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	if err := c.Activate(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.UpdateViewFocusState(true); err != nil {
		t.Fatal(err)
	}
	batch, err := c.UpdateIfActive(func() *model.TreeUpdate { return model.NewTreeUpdate(1) })
	if err != nil {
		t.Fatal(err)
	}
	if got := names(batch); len(got) != 1 || got[0] != "focus" || batch.Events[0].Node != 1 {
		t.Errorf("events = %+v", batch)
	}
}

func TestPerformAction(t *testing.T) {
	q := NewActionQueue()
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }), WithActionHandler(q))

	if err := c.PerformAction(NewActionRequest(model.ActionClick, 2)); err == nil {
		t.Error("expected error while inactive")
	}
	if err := c.Activate(); err != nil {
		t.Fatal(err)
	}
	if err := c.PerformAction(NewActionRequest(model.ActionClick, 2)); err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if err := c.PerformAction(NewActionRequest(model.ActionExpand, 2)); err == nil {
		t.Error("expected error for unsupported action")
	}
	if err := c.PerformAction(NewActionRequest(model.ActionClick, 99)); err == nil {
		t.Error("expected error for unknown node")
	}
	got := q.Take()
	if len(got) != 1 || got[0].Name != "click" || got[0].Target != 2 {
		t.Errorf("queued = %+v", got)
	}
	if q.Len() != 0 {
		t.Error("Take should drain the queue")
	}
}

func TestDestroy(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	if err := c.Activate(); err != nil {
		t.Fatal(err)
	}
	c.Destroy()
	if c.NativeHandle() != 0xbeef {
		t.Errorf("native handle = %#x", c.NativeHandle())
	}
	if err := c.Activate(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Activate err = %v", err)
	}
	if _, err := c.UpdateIfActive(relabel("x")); !errors.Is(err, ErrDestroyed) {
		t.Errorf("UpdateIfActive err = %v", err)
	}
	if _, err := c.UpdateViewFocusState(true); !errors.Is(err, ErrDestroyed) {
		t.Errorf("UpdateViewFocusState err = %v", err)
	}
	if err := c.PerformAction(NewActionRequest(model.ActionClick, 2)); !errors.Is(err, ErrDestroyed) {
		t.Errorf("PerformAction err = %v", err)
	}
	if c.ActionHandler() != nil {
		t.Error("action handler should be dropped")
	}
}

func TestActivate_HandlerMayCallBack(t *testing.T) {
	var c *Core
	c, _ = newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate {
		// The lock must not be held while the handler runs.
		_ = c.State()
		return buttonTree("OK")
	}))
	if err := c.Activate(); err != nil {
		t.Fatal(err)
	}
}

func TestActivate_Concurrent(t *testing.T) {
	c, _ := newTestCore(ActivationHandlerFunc(func() *model.TreeUpdate { return buttonTree("OK") }))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Activate(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if c.State() != StateActive {
		t.Errorf("state = %s", c.State())
	}
}

func TestEventBatch_RaiseTwicePanics(t *testing.T) {
	rec := &Recorder{}
	b := newBatch(rec, []Event{{Name: "x"}})
	b.Raise()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.Raise()
}

func TestNewBatch_EmptyIsNil(t *testing.T) {
	if b := newBatch(&Recorder{}, nil); b != nil {
		t.Errorf("expected nil batch, got %+v", b)
	}
}

func TestMultiDispatcher(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	var seen []string
	m := MultiDispatcher{a, b, DispatcherFunc(func(ev Event) { seen = append(seen, ev.Name) })}
	m.Dispatch(Event{Name: "x"})
	if len(a.Events()) != 1 || len(b.Events()) != 1 || len(seen) != 1 {
		t.Errorf("a=%d b=%d func=%d", len(a.Events()), len(b.Events()), len(seen))
	}
}
