package platform

import (
	"sync"

	"github.com/mj1618/a11ybridge/internal/model"
)

// ActionData carries the payload some actions need. At most one field is
// meaningful for a given action.
type ActionData struct {
	CustomAction  *int32               `yaml:"custom,omitempty"    json:"custom,omitempty"`
	Value         *string              `yaml:"value,omitempty"     json:"value,omitempty"`
	NumericValue  *float64             `yaml:"numeric,omitempty"   json:"numeric,omitempty"`
	ScrollPoint   *[2]float64          `yaml:"point,omitempty"     json:"point,omitempty"`
	TextSelection *model.TextSelection `yaml:"selection,omitempty" json:"selection,omitempty"`
}

// ActionRequest is an assistive client's request to act on a node.
type ActionRequest struct {
	Action model.Action `yaml:"-"      json:"-"`
	Name   string       `yaml:"action" json:"action"`
	Target model.NodeID `yaml:"target" json:"target"`
	Data   ActionData   `yaml:"data"   json:"data"`
}

// NewActionRequest builds a request with its Name filled in.
func NewActionRequest(a model.Action, target model.NodeID) ActionRequest {
	return ActionRequest{Action: a, Name: a.String(), Target: target}
}

// ActionQueue buffers requests until the application drains them.
// Requests may arrive on platform threads; the queue is safe for
// concurrent use.
type ActionQueue struct {
	mu      sync.Mutex
	pending []ActionRequest
}

// NewActionQueue creates an empty queue.
func NewActionQueue() *ActionQueue {
	return &ActionQueue{}
}

func (q *ActionQueue) DoAction(req ActionRequest) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, req)
}

// Take returns and clears every pending request, oldest first.
func (q *ActionQueue) Take() []ActionRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending requests.
func (q *ActionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
