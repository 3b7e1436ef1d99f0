package darwin

import "github.com/mj1618/a11ybridge/internal/platform"

func init() {
	platform.Register(platform.MacOS, func(native uintptr, activation platform.ActivationHandler, opts ...platform.Option) platform.Adapter {
		return NewForView(native, activation, opts...)
	})
}
