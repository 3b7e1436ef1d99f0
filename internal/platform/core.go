package platform

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/tree"
)

// State is where an adapter is in its activation lifecycle.
type State int

const (
	// StateInactive: no assistive client has queried the view yet.
	StateInactive State = iota
	// StatePlaceholder: a client is listening but no tree has been supplied.
	StatePlaceholder
	// StateActive: a client is listening and the tree is populated.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StatePlaceholder:
		return "placeholder"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrDestroyed is returned by every operation on a destroyed adapter.
var ErrDestroyed = errors.New("adapter destroyed")

// ErrNilUpdate is returned when an update source yields no update.
var ErrNilUpdate = errors.New("update source returned no tree update")

// Translator turns tree-level results into the events of one platform.
type Translator interface {
	Platform() string
	// Initial is emitted when a tree first replaces the placeholder.
	Initial(t *tree.Tree) []Event
	// Changes is emitted for each later update.
	Changes(res tree.Result, t *tree.Tree) []Event
	// Focus is emitted when the effective focus moves. f.OK is false when
	// nothing has focus.
	Focus(f Focus, t *tree.Tree) []Event
}

// Focus is the node that currently has accessibility focus, if any.
type Focus struct {
	ID model.NodeID
	OK bool
}

// Core is the state machine shared by every adapter variant. Variants
// embed it and supply a Translator.
//
// The mutex serializes state transitions because activation and action
// requests can arrive on platform threads. It is never held while calling
// into caller-supplied code.
type Core struct {
	mu          sync.Mutex
	translator  Translator
	native      uintptr
	state       State
	tree        *tree.Tree
	hostFocused bool
	destroyed   bool
	activation  ActivationHandler
	actions     ActionHandler
	dispatcher  Dispatcher
	log         zerolog.Logger
}

// NewCore creates an inactive core bound to a borrowed native handle.
func NewCore(tr Translator, native uintptr, activation ActivationHandler, opts ...Option) *Core {
	o := buildOptions(opts)
	return &Core{
		translator: tr,
		native:     native,
		tree:       tree.New(),
		activation: activation,
		actions:    o.actions,
		dispatcher: o.dispatcher,
		log:        o.logger.With().Str("platform", tr.Platform()).Uint64("native", uint64(native)).Logger(),
	}
}

func (c *Core) Platform() string { return c.translator.Platform() }

// NativeHandle returns the borrowed window or view handle.
func (c *Core) NativeHandle() uintptr { return c.native }

// State returns the current lifecycle state.
func (c *Core) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HostFocused reports the last value passed to UpdateViewFocusState.
func (c *Core) HostFocused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hostFocused
}

// ActionHandler returns the handler action requests are forwarded to.
func (c *Core) ActionHandler() ActionHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actions
}

// Elements returns the current tree in depth-first order.
func (c *Core) Elements() []model.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || c.state != StateActive {
		return nil
	}
	return c.tree.Elements()
}

// Activate asks the activation handler for a full tree. With a tree the
// adapter becomes active; without one it waits in the placeholder state for
// the next UpdateIfActive. An active adapter keeps its tree and the handler
// is not called.
func (c *Core) Activate() error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	if c.state == StateActive {
		c.mu.Unlock()
		return nil
	}
	handler := c.activation
	c.mu.Unlock()

	initial := handler.RequestInitialTree()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return ErrDestroyed
	}
	if c.state == StateActive {
		// Another activation or a placeholder update won the race.
		return nil
	}
	if initial == nil {
		if c.state == StateInactive {
			c.state = StatePlaceholder
		}
		c.log.Debug().Str("state", c.state.String()).Msg("activated without initial tree")
		return nil
	}
	fresh := tree.New()
	if _, err := fresh.Apply(initial); err != nil {
		return fmt.Errorf("initial tree: %w", err)
	}
	c.tree = fresh
	c.state = StateActive
	c.log.Debug().Int("nodes", fresh.Len()).Msg("activated with initial tree")
	return nil
}

// UpdateIfActive calls source and applies its update unless the adapter is
// inactive, in which case source is not called and nil is returned.
func (c *Core) UpdateIfActive(source func() *model.TreeUpdate) (*EventBatch, error) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return nil, ErrDestroyed
	}
	if c.state == StateInactive {
		c.mu.Unlock()
		return nil, nil
	}
	c.mu.Unlock()

	u := source()
	if u == nil {
		return nil, ErrNilUpdate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return nil, ErrDestroyed
	}
	prevFocus := c.effectiveFocus()
	wasPlaceholder := c.state == StatePlaceholder

	res, err := c.tree.Apply(u)
	if err != nil {
		return nil, err
	}
	c.state = StateActive

	var events []Event
	if wasPlaceholder {
		events = c.translator.Initial(c.tree)
	} else {
		events = c.translator.Changes(res, c.tree)
	}
	if focus := c.effectiveFocus(); focus != prevFocus {
		events = append(events, c.translator.Focus(focus, c.tree)...)
	}
	c.log.Debug().Int("changes", len(res.Changes)).Int("events", len(events)).Msg("update applied")
	return newBatch(c.dispatcher, events), nil
}

// UpdateViewFocusState records whether the host view has input focus and
// reports a focus event when that moves the effective focus.
func (c *Core) UpdateViewFocusState(focused bool) (*EventBatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return nil, ErrDestroyed
	}
	prev := c.effectiveFocus()
	c.hostFocused = focused
	if c.state != StateActive {
		return nil, nil
	}
	curr := c.effectiveFocus()
	if curr == prev {
		return nil, nil
	}
	return newBatch(c.dispatcher, c.translator.Focus(curr, c.tree)), nil
}

// PerformAction validates req against the current tree and forwards it to
// the action handler.
func (c *Core) PerformAction(req ActionRequest) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	if c.state != StateActive {
		c.mu.Unlock()
		return fmt.Errorf("adapter is %s", c.state)
	}
	n, ok := c.tree.Node(req.Target)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("node %d not found", req.Target)
	}
	if !n.SupportsAction(req.Action) {
		c.mu.Unlock()
		return fmt.Errorf("node %d does not support action %s", req.Target, req.Action)
	}
	handler := c.actions
	c.mu.Unlock()

	if req.Name == "" {
		req.Name = req.Action.String()
	}
	handler.DoAction(req)
	return nil
}

// Destroy drops the tree and both handlers. The native handle is borrowed
// and is left alone.
func (c *Core) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	c.tree = nil
	c.activation = nil
	c.actions = nil
	c.log.Debug().Msg("destroyed")
}

// effectiveFocus is the tree's focus while the host has input focus, and
// nothing otherwise. Must be called with c.mu held.
func (c *Core) effectiveFocus() Focus {
	if !c.hostFocused || c.tree == nil || !c.tree.Ready() {
		return Focus{}
	}
	return Focus{ID: c.tree.Focus(), OK: true}
}
