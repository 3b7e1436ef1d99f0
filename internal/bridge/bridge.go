// Package bridge is the boundary surface of the library. Every entry point
// takes and returns only handles and primitive values, so a caller in
// another runtime can drive the whole protocol through integers, byte
// slices and float slices.
//
// Contract violations (bad handles, out-of-range codes, updates the engine
// rejects) panic: the boundary has no error channel.
package bridge

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/mj1618/a11ybridge/internal/handle"
	"github.com/mj1618/a11ybridge/internal/platform"
)

// Failure is the panic value for a rejected call that is not a handle
// misuse: an invalid enumeration code, an update the engine refused, or a
// runtime that could not attach the current thread.
type Failure struct {
	Op  string
	Err error
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %v", f.Op, f.Err) }

func (f *Failure) Unwrap() error { return f.Err }

func fail(op string, err error) {
	panic(&Failure{Op: op, Err: err})
}

// Supplier is a caller-supplied object with one zero-argument operation
// returning a TreeUpdate handle, or 0 for none.
type Supplier interface {
	Get() int64
}

// SupplierFunc adapts a function to Supplier.
type SupplierFunc func() int64

func (f SupplierFunc) Get() int64 { return f() }

// Runtime attaches the current OS thread to the caller's runtime before
// caller logic runs on it.
type Runtime interface {
	AttachCurrentThread() (Env, error)
}

// Env is an attachment returned by Runtime. Detach must be idempotent.
type Env interface {
	Detach()
}

// ThreadRuntime pins the calling goroutine to its OS thread for the
// duration of the attachment.
type ThreadRuntime struct{}

func (ThreadRuntime) AttachCurrentThread() (Env, error) {
	runtime.LockOSThread()
	return &threadEnv{}, nil
}

type threadEnv struct {
	detached bool
}

func (e *threadEnv) Detach() {
	if e.detached {
		return
	}
	e.detached = true
	runtime.UnlockOSThread()
}

// Bridge owns the handle registry every entry point resolves against.
type Bridge struct {
	reg        *handle.Registry
	runtime    Runtime
	dispatcher platform.Dispatcher
	log        zerolog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithRuntime sets the runtime used by activation handlers.
func WithRuntime(rt Runtime) Option {
	return func(b *Bridge) { b.runtime = rt }
}

// WithDispatcher sets where adapters created by the bridge raise events.
func WithDispatcher(d platform.Dispatcher) Option {
	return func(b *Bridge) { b.dispatcher = d }
}

// WithLogger sets the logger handed to adapters.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// New creates a bridge with an empty registry.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		reg:     handle.NewRegistry(),
		runtime: ThreadRuntime{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.dispatcher == nil {
		b.dispatcher = platform.LogDispatcher{Logger: b.log}
	}
	return b
}

// Live returns the number of outstanding handles.
func (b *Bridge) Live() int { return b.reg.Live() }

// Kind returns the type of object behind ptr, or "" if it is not live.
func (b *Bridge) Kind(ptr int64) string { return b.reg.Kind(handle.Handle(ptr)) }
