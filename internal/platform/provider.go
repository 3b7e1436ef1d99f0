package platform

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Platform names accepted by NewAdapter and the CLI.
const (
	MacOS   = "macos"
	Windows = "windows"
)

// Factory builds an adapter bound to a borrowed native handle.
type Factory func(native uintptr, activation ActivationHandler, opts ...Option) Adapter

// factories is filled in by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration. Importing
// a variant package is what makes its name valid.
var factories = map[string]Factory{}

// Register makes an adapter variant available by name.
func Register(name string, f Factory) {
	factories[name] = f
}

// NewAdapter builds an adapter for the named platform.
func NewAdapter(name string, native uintptr, activation ActivationHandler, opts ...Option) (Adapter, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return f(native, activation, opts...), nil
}

// Default returns the adapter variant matching the host OS, or fallback on
// any other OS.
func Default(fallback string) string {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return fallback
	}
}

// Valid reports whether an adapter variant is registered under name.
func Valid(name string) bool {
	_, ok := factories[name]
	return ok
}

// Names lists the registered variants in order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
