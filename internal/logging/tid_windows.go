//go:build windows

package logging

import "golang.org/x/sys/windows"

// threadID returns the OS thread id the calling goroutine currently
// runs on.
func threadID() int {
	return int(windows.GetCurrentThreadId())
}
