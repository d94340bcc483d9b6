//go:build !linux && !windows

package logging

// DebuggerAttached always reports false on platforms without a cheap
// way to detect an attached tracer.
func DebuggerAttached() bool {
	return false
}
