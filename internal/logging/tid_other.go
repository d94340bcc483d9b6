//go:build !linux && !windows

package logging

func threadID() int {
	return 0
}
