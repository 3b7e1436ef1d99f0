// Package darwin is the macOS adapter variant. It binds to a borrowed NSView
// (or the content view of an NSWindow) and reports tree changes as
// NSAccessibility notification names.
//
// The package does not call AppKit itself; raised events go to the
// adapter's Dispatcher, which the host wires to the platform.
package darwin
