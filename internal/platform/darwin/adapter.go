package darwin

import (
	"github.com/mj1618/a11ybridge/internal/platform"
)

// Binding says what kind of native object the adapter was created for.
type Binding int

const (
	BindView Binding = iota
	BindWindow
)

func (b Binding) String() string {
	if b == BindWindow {
		return "window"
	}
	return "view"
}

// Adapter is the macOS adapter. It is created inactive and becomes active
// the first time VoiceOver (or another client) queries the view.
type Adapter struct {
	*platform.Core
	binding Binding
}

// NewForView creates an adapter for an NSView. The view is borrowed: it must
// outlive the adapter and is not released by Destroy.
func NewForView(view uintptr, activation platform.ActivationHandler, opts ...platform.Option) *Adapter {
	return &Adapter{
		Core:    platform.NewCore(translator{}, view, activation, opts...),
		binding: BindView,
	}
}

// NewForWindow creates an adapter for the content view of an NSWindow.
func NewForWindow(window uintptr, activation platform.ActivationHandler, opts ...platform.Option) *Adapter {
	return &Adapter{
		Core:    platform.NewCore(translator{}, window, activation, opts...),
		binding: BindWindow,
	}
}

// Binding returns what the native handle refers to.
func (a *Adapter) Binding() Binding { return a.binding }
