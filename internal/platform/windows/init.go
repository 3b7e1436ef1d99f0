package windows

import "github.com/mj1618/a11ybridge/internal/platform"

func init() {
	platform.Register(platform.Windows, func(native uintptr, activation platform.ActivationHandler, opts ...platform.Option) platform.Adapter {
		return New(HWND(native), activation, opts...)
	})
}
