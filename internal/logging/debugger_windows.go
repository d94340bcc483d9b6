//go:build windows

package logging

import "golang.org/x/sys/windows"

var (
	kernel32DLL           = windows.NewLazySystemDLL("kernel32.dll")
	procIsDebuggerPresent = kernel32DLL.NewProc("IsDebuggerPresent")
)

// DebuggerAttached reports whether a debugger is attached to this
// process, via kernel32 IsDebuggerPresent.
func DebuggerAttached() bool {
	r, _, _ := procIsDebuggerPresent.Call()
	return r != 0
}
