//go:build linux

package logging

import "golang.org/x/sys/unix"

// threadID returns the OS thread id the calling goroutine currently
// runs on. Goroutines migrate between threads, so the value is a
// diagnostic hint, not a stable identity.
func threadID() int {
	return unix.Gettid()
}
