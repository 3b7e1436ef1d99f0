// Package windows is the Windows adapter variant. It binds to a borrowed
// HWND and reports tree changes as UI Automation event and property ids.
package windows
