package bridge

import (
	"errors"

	"github.com/mj1618/a11ybridge/internal/handle"
	"github.com/mj1618/a11ybridge/internal/model"
)

// activationHandler calls back into the caller for the initial tree. The
// platform may ask from any thread, so the runtime is attached first.
type activationHandler struct {
	b        *Bridge
	supplier Supplier
}

func (b *Bridge) newActivationHandler(s Supplier) *activationHandler {
	if s == nil {
		fail("activation handler", errors.New("nil initial tree supplier"))
	}
	return &activationHandler{b: b, supplier: s}
}

func (h *activationHandler) RequestInitialTree() *model.TreeUpdate {
	env, err := h.b.runtime.AttachCurrentThread()
	if err != nil {
		fail("attach current thread", err)
	}
	defer env.Detach()

	ptr := h.supplier.Get()
	if ptr == 0 {
		h.b.log.Debug().Msg("initial tree supplier returned none")
		return nil
	}
	return handle.Consume[model.TreeUpdate](h.b.reg, handle.Handle(ptr))
}

// updateSource wraps an update supplier for one UpdateIfActive call. It runs
// on the caller's own thread, so no attachment is needed.
func (b *Bridge) updateSource(s Supplier) func() *model.TreeUpdate {
	return func() *model.TreeUpdate {
		return handle.Consume[model.TreeUpdate](b.reg, handle.Handle(s.Get()))
	}
}
