// Package handle hands heap objects to callers as opaque integer handles.
//
// Every handle has exactly one owner and exactly one way out: Destroy or
// Consume. Using a handle after either, or with the wrong type, panics with a
// *Violation. Handles are never reused, so a stale handle is always caught.
package handle

import (
	"fmt"
	"reflect"
	"sync"
)

// Handle is an opaque reference to one live object in a Registry.
// The zero value is the "none" sentinel and is never issued.
type Handle int64

// None is the sentinel a caller returns when it has nothing to hand over.
const None Handle = 0

// Violation describes a misuse of a handle. It is only ever raised via panic.
type Violation struct {
	Op       string
	Handle   Handle
	Expected string
	Actual   string
	Reason   string
}

func (v *Violation) Error() string {
	if v.Actual != "" {
		return fmt.Sprintf("handle %d: %s: expected %s, got %s", v.Handle, v.Op, v.Expected, v.Actual)
	}
	return fmt.Sprintf("handle %d: %s: %s", v.Handle, v.Op, v.Reason)
}

type entry struct {
	value any
	kind  string
}

// Registry tracks the live objects behind handles.
// The table is safe for concurrent use; the objects themselves are not locked.
type Registry struct {
	mu   sync.Mutex
	next Handle
	live map[Handle]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[Handle]entry)}
}

// Live returns the number of handles that have been issued but not yet
// destroyed or consumed.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Kind returns the type name of the object behind h, or "" if h is not live.
func (r *Registry) Kind(h Handle) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[h].kind
}

// New stores v and returns a fresh handle owning it.
func New[T any](r *Registry, v *T) Handle {
	if v == nil {
		panic(&Violation{Op: "new", Reason: "nil " + typeName[T]()})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := r.next
	r.live[h] = entry{value: v, kind: typeName[T]()}
	return h
}

// Mutable dereferences h for in-place mutation.
func Mutable[T any](r *Registry, h Handle) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lookup[T](r, "mutate", h)
}

// With calls fn with the object behind h.
func With[T any](r *Registry, h Handle, fn func(*T)) {
	fn(Mutable[T](r, h))
}

// Value returns the object behind h without checking its type. It is for
// callers that dispatch on an interface the object implements.
func Value(r *Registry, h Handle) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == None {
		panic(&Violation{Op: "inspect", Handle: h, Reason: "null handle"})
	}
	e, ok := r.live[h]
	if !ok {
		panic(&Violation{Op: "inspect", Handle: h, Reason: "unknown handle"})
	}
	return e.value
}

// Destroy releases the object behind h. The handle is invalid afterwards.
func Destroy[T any](r *Registry, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lookup[T](r, "destroy", h)
	delete(r.live, h)
}

// Consume transfers the object out of h. The handle is invalid afterwards and
// the caller now owns the returned value.
func Consume[T any](r *Registry, h Handle) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := lookup[T](r, "consume", h)
	delete(r.live, h)
	return v
}

// lookup must be called with r.mu held.
func lookup[T any](r *Registry, op string, h Handle) *T {
	if h == None {
		panic(&Violation{Op: op, Handle: h, Reason: "null handle"})
	}
	e, ok := r.live[h]
	if !ok {
		reason := "unknown handle"
		if h > 0 && h <= r.next {
			reason = "handle already destroyed or consumed"
		}
		panic(&Violation{Op: op, Handle: h, Reason: reason})
	}
	v, ok := e.value.(*T)
	if !ok {
		panic(&Violation{Op: op, Handle: h, Expected: typeName[T](), Actual: e.kind})
	}
	return v
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
