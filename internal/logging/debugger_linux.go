//go:build linux

package logging

import (
	"bytes"
	"os"
	"strconv"
)

// DebuggerAttached reports whether a tracer (gdb, delve, strace) is
// attached to this process, read from the TracerPid field of
// /proc/self/status.
func DebuggerAttached() bool {
	data, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return false
	}

	const key = "TracerPid:"
	idx := bytes.Index(data, []byte(key))
	if idx < 0 {
		return false
	}

	rest := data[idx+len(key):]
	if end := bytes.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}

	pid, err := strconv.Atoi(string(bytes.TrimSpace(rest)))
	if err != nil {
		return false
	}
	return pid != 0
}
