package windows

import (
	"github.com/mj1618/a11ybridge/internal/platform"
)

// HWND is a borrowed Win32 window handle.
type HWND uintptr

// Adapter is the Windows adapter. It becomes active when a UI Automation
// client first sends WM_GETOBJECT to the window.
type Adapter struct {
	*platform.Core
	hwnd HWND
}

// New creates an adapter for hwnd. The window is borrowed: it must outlive
// the adapter and is not destroyed by Destroy.
func New(hwnd HWND, activation platform.ActivationHandler, opts ...platform.Option) *Adapter {
	return &Adapter{
		Core: platform.NewCore(translator{}, uintptr(hwnd), activation, opts...),
		hwnd: hwnd,
	}
}

// HWND returns the borrowed window handle.
func (a *Adapter) HWND() HWND { return a.hwnd }
