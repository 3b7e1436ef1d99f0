package platform

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mj1618/a11ybridge/internal/model"
)

// Event is one platform-native accessibility event, identified by the name
// the platform uses for it (an NSAccessibility notification or a UI
// Automation event id).
type Event struct {
	Platform string       `yaml:"platform"         json:"platform"`
	Name     string       `yaml:"name"             json:"name"`
	Node     model.NodeID `yaml:"node"             json:"node"`
	Detail   string       `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// Dispatcher delivers raised events to the platform.
type Dispatcher interface {
	Dispatch(ev Event)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ev Event)

func (f DispatcherFunc) Dispatch(ev Event) { f(ev) }

// MultiDispatcher delivers each event to every dispatcher in order.
type MultiDispatcher []Dispatcher

func (m MultiDispatcher) Dispatch(ev Event) {
	for _, d := range m {
		d.Dispatch(ev)
	}
}

// EventBatch is the set of events produced by one adapter call. Batches are
// raised as a unit and are never merged with other batches.
type EventBatch struct {
	Events     []Event
	dispatcher Dispatcher
	raised     bool
}

func newBatch(d Dispatcher, events []Event) *EventBatch {
	if len(events) == 0 {
		return nil
	}
	return &EventBatch{Events: events, dispatcher: d}
}

// Raise dispatches every event in order. Raising a batch twice panics.
func (b *EventBatch) Raise() {
	if b.raised {
		panic("platform: event batch raised twice")
	}
	b.raised = true
	for _, ev := range b.Events {
		b.dispatcher.Dispatch(ev)
	}
}

// LogDispatcher writes each event to a zerolog logger at debug level.
type LogDispatcher struct {
	Logger zerolog.Logger
}

func (d LogDispatcher) Dispatch(ev Event) {
	d.Logger.Debug().
		Str("platform", ev.Platform).
		Str("event", ev.Name).
		Uint64("node", uint64(ev.Node)).
		Str("detail", ev.Detail).
		Msg("raise")
}

// Recorder keeps every dispatched event. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Dispatch(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
