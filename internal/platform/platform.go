package platform

import (
	"github.com/mj1618/a11ybridge/internal/model"
)

// ActivationHandler supplies the initial tree when an assistive client first
// queries an adapter. It may be called on any thread, and more than once.
// A nil result means no tree is available yet; the caller is expected to
// push one later through UpdateIfActive.
type ActivationHandler interface {
	RequestInitialTree() *model.TreeUpdate
}

// ActivationHandlerFunc adapts a function to ActivationHandler.
type ActivationHandlerFunc func() *model.TreeUpdate

func (f ActivationHandlerFunc) RequestInitialTree() *model.TreeUpdate { return f() }

// ActionHandler receives action requests from assistive clients.
type ActionHandler interface {
	DoAction(req ActionRequest)
}

// Adapter is the contract every platform variant implements.
//
// UpdateIfActive and UpdateViewFocusState return the events the call
// produced, or nil. A returned batch must be raised on the calling thread
// before any other adapter call.
type Adapter interface {
	// Platform names the variant, e.g. "macos".
	Platform() string

	// UpdateIfActive calls source and applies its update only when an
	// assistive client is listening. Otherwise source is never called.
	UpdateIfActive(source func() *model.TreeUpdate) (*EventBatch, error)

	// UpdateViewFocusState tells the adapter whether the host view has
	// OS-level input focus.
	UpdateViewFocusState(focused bool) (*EventBatch, error)

	// Activate is called by the host when an assistive client first
	// queries the view.
	Activate() error

	// PerformAction forwards an assistive client's request to the action
	// handler after checking the target supports it.
	PerformAction(req ActionRequest) error

	// Destroy releases adapter state. The native handle is not touched.
	Destroy()
}
