package platform

import "github.com/rs/zerolog"

type options struct {
	actions    ActionHandler
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// Option configures an adapter.
type Option func(*options)

// WithActionHandler routes action requests to h instead of a new ActionQueue.
func WithActionHandler(h ActionHandler) Option {
	return func(o *options) { o.actions = h }
}

// WithDispatcher sets where raised events go. The default logs them.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// WithLogger sets the adapter's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.actions == nil {
		o.actions = NewActionQueue()
	}
	if o.dispatcher == nil {
		o.dispatcher = LogDispatcher{Logger: o.logger}
	}
	return o
}
