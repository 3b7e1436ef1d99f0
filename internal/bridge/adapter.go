package bridge

import (
	"fmt"

	"github.com/mj1618/a11ybridge/internal/handle"
	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/platform"
	"github.com/mj1618/a11ybridge/internal/platform/darwin"
	"github.com/mj1618/a11ybridge/internal/platform/windows"
)

// adapter is what both variants offer beyond platform.Adapter through the
// embedded platform.Core.
type adapter interface {
	platform.Adapter
	NativeHandle() uintptr
	State() platform.State
	HostFocused() bool
	Elements() []model.Element
	ActionHandler() platform.ActionHandler
}

func (b *Bridge) adapterOptions() []platform.Option {
	return []platform.Option{
		platform.WithDispatcher(b.dispatcher),
		platform.WithLogger(b.log),
	}
}

// AdapterNew creates an adapter of the named variant bound to a borrowed
// native handle. A macOS adapter binds to an NSView, a Windows adapter to
// an HWND. An unregistered name is an ordinary error.
func (b *Bridge) AdapterNew(name string, native int64, initialTree Supplier) (int64, error) {
	a, err := platform.NewAdapter(name, uintptr(native), b.newActivationHandler(initialTree), b.adapterOptions()...)
	if err != nil {
		return 0, err
	}
	switch a := a.(type) {
	case *darwin.Adapter:
		return int64(handle.New(b.reg, a)), nil
	case *windows.Adapter:
		return int64(handle.New(b.reg, a)), nil
	default:
		a.Destroy()
		return 0, fmt.Errorf("platform %q: unsupported adapter type %T", name, a)
	}
}

func (b *Bridge) mustAdapterNew(op, name string, native int64, initialTree Supplier) int64 {
	h, err := b.AdapterNew(name, native, initialTree)
	if err != nil {
		fail(op, err)
	}
	return h
}

// MacosAdapterNew creates a macOS adapter for a borrowed NSView. The
// initial tree supplier is kept until the adapter is dropped.
func (b *Bridge) MacosAdapterNew(view int64, initialTree Supplier) int64 {
	return b.mustAdapterNew("macos adapter new", platform.MacOS, view, initialTree)
}

// MacosAdapterForWindow creates a macOS adapter for the content view of a
// borrowed NSWindow.
func (b *Bridge) MacosAdapterForWindow(window int64, initialTree Supplier) int64 {
	a := darwin.NewForWindow(uintptr(window), b.newActivationHandler(initialTree), b.adapterOptions()...)
	return int64(handle.New(b.reg, a))
}

// MacosAdapterDrop destroys the adapter. The view is left alone.
func (b *Bridge) MacosAdapterDrop(ptr int64) {
	handle.Consume[darwin.Adapter](b.reg, handle.Handle(ptr)).Destroy()
}

// MacosAdapterUpdateIfActive pulls an update from the supplier only if an
// assistive client is listening, and raises the resulting events.
func (b *Bridge) MacosAdapterUpdateIfActive(ptr int64, update Supplier) {
	a := handle.Mutable[darwin.Adapter](b.reg, handle.Handle(ptr))
	b.updateIfActive("macos update if active", a, update)
}

func (b *Bridge) MacosAdapterUpdateViewFocusState(ptr int64, focused bool) {
	a := handle.Mutable[darwin.Adapter](b.reg, handle.Handle(ptr))
	b.updateViewFocusState("macos update view focus state", a, focused)
}

// MacosAdapterActivate simulates the first query from an assistive client.
func (b *Bridge) MacosAdapterActivate(ptr int64) {
	b.activate("macos activate", handle.Mutable[darwin.Adapter](b.reg, handle.Handle(ptr)))
}

// MacosAdapterTakeActionRequests drains the adapter's pending action
// requests.
func (b *Bridge) MacosAdapterTakeActionRequests(ptr int64) []platform.ActionRequest {
	return takeActions(handle.Mutable[darwin.Adapter](b.reg, handle.Handle(ptr)))
}

// WindowsAdapterNew creates a Windows adapter for a borrowed HWND.
func (b *Bridge) WindowsAdapterNew(hwnd int64, initialTree Supplier) int64 {
	return b.mustAdapterNew("windows adapter new", platform.Windows, hwnd, initialTree)
}

// WindowsAdapterDrop destroys the adapter. The window is left alone.
func (b *Bridge) WindowsAdapterDrop(ptr int64) {
	handle.Consume[windows.Adapter](b.reg, handle.Handle(ptr)).Destroy()
}

func (b *Bridge) WindowsAdapterUpdateIfActive(ptr int64, update Supplier) {
	a := handle.Mutable[windows.Adapter](b.reg, handle.Handle(ptr))
	b.updateIfActive("windows update if active", a, update)
}

func (b *Bridge) WindowsAdapterUpdateViewFocusState(ptr int64, focused bool) {
	a := handle.Mutable[windows.Adapter](b.reg, handle.Handle(ptr))
	b.updateViewFocusState("windows update view focus state", a, focused)
}

func (b *Bridge) WindowsAdapterActivate(ptr int64) {
	b.activate("windows activate", handle.Mutable[windows.Adapter](b.reg, handle.Handle(ptr)))
}

func (b *Bridge) WindowsAdapterTakeActionRequests(ptr int64) []platform.ActionRequest {
	return takeActions(handle.Mutable[windows.Adapter](b.reg, handle.Handle(ptr)))
}

// AdapterInfo is a snapshot of an adapter of either variant.
type AdapterInfo struct {
	Platform    string          `yaml:"platform"           json:"platform"`
	Native      uint64          `yaml:"native"             json:"native"`
	State       string          `yaml:"state"              json:"state"`
	HostFocused bool            `yaml:"host_focused"       json:"host_focused"`
	Nodes       []model.Element `yaml:"nodes,omitempty"    json:"nodes,omitempty"`
}

// AdapterInfo describes the adapter behind ptr, whichever variant it is.
func (b *Bridge) AdapterInfo(ptr int64) AdapterInfo {
	a := b.anyAdapter("adapter info", ptr)
	return AdapterInfo{
		Platform:    a.Platform(),
		Native:      uint64(a.NativeHandle()),
		State:       a.State().String(),
		HostFocused: a.HostFocused(),
		Nodes:       a.Elements(),
	}
}

// AdapterPerformAction delivers an assistive client's action request to
// the adapter behind ptr. A rejected request is an ordinary error: clients
// may ask for anything.
func (b *Bridge) AdapterPerformAction(ptr int64, action int32, target int64) error {
	a := b.anyAdapter("adapter perform action", ptr)
	act, err := model.ActionFromCode(int(action))
	if err != nil {
		fail("adapter perform action", err)
	}
	return a.PerformAction(platform.NewActionRequest(act, model.NodeID(target)))
}

func (b *Bridge) anyAdapter(op string, ptr int64) adapter {
	v := handle.Value(b.reg, handle.Handle(ptr))
	a, ok := v.(adapter)
	if !ok {
		panic(&handle.Violation{Op: op, Handle: handle.Handle(ptr), Expected: "adapter", Actual: fmt.Sprintf("%T", v)})
	}
	return a
}

func (b *Bridge) updateIfActive(op string, a adapter, s Supplier) {
	if s == nil {
		fail(op, fmt.Errorf("nil update supplier"))
	}
	batch, err := a.UpdateIfActive(b.updateSource(s))
	if err != nil {
		fail(op, err)
	}
	if batch != nil {
		batch.Raise()
	}
}

func (b *Bridge) updateViewFocusState(op string, a adapter, focused bool) {
	batch, err := a.UpdateViewFocusState(focused)
	if err != nil {
		fail(op, err)
	}
	if batch != nil {
		batch.Raise()
	}
}

func (b *Bridge) activate(op string, a adapter) {
	if err := a.Activate(); err != nil {
		fail(op, err)
	}
}

func takeActions(a adapter) []platform.ActionRequest {
	q, ok := a.ActionHandler().(*platform.ActionQueue)
	if !ok {
		return nil
	}
	return q.Take()
}
