//go:build windows

package power

import "golang.org/x/sys/windows"

// Execution state flags for SetThreadExecutionState. ES_CONTINUOUS
// keeps the requirement in force between calls; system and display
// required stop both sleep and screen blanking during capture.
const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

var (
	kernel32DLL                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32DLL.NewProc("SetThreadExecutionState")
)

type threadExecutionAsserter struct{}

func newAsserter() Asserter { return threadExecutionAsserter{} }

func (threadExecutionAsserter) KeepAwake() error {
	return setThreadExecutionState(esContinuous | esSystemRequired | esDisplayRequired)
}

func (threadExecutionAsserter) Release() error {
	return setThreadExecutionState(esContinuous)
}

func setThreadExecutionState(flags uintptr) error {
	prev, _, callErr := procSetThreadExecutionState.Call(flags)
	if prev == 0 {
		return callErr
	}
	return nil
}
