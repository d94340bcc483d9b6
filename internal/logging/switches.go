// Package logging builds the process-wide zap pipeline: a console sink,
// a rolling NDJSON file sink, and an in-memory display sink feeding the
// interactive session. All sinks hang off one tee; two atomic level
// switches stay adjustable for the life of the process.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel sits below zap's Debug and carries frame-by-frame detail
// that only matters when chasing capture timing issues.
const TraceLevel = zapcore.Level(-2)

// Switches holds the two mutable level gates. Pipeline gates every sink;
// Console additionally gates the console sink only. Both are safe for
// concurrent use and may be adjusted at any time.
type Switches struct {
	Pipeline zap.AtomicLevel
	Console  zap.AtomicLevel
}

// NewSwitches builds the default gates: the pipeline captures down to
// Debug and the console stays at Info. With a debugger attached both
// open one step further, Trace and Debug respectively.
func NewSwitches(debuggerAttached bool) *Switches {
	s := &Switches{
		Pipeline: zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Console:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
	if debuggerAttached {
		s.Pipeline.SetLevel(TraceLevel)
		s.Console.SetLevel(zapcore.DebugLevel)
	}
	return s
}

// encodeLevelUpper renders levels for the console, including the custom
// Trace level zapcore does not know about.
func encodeLevelUpper(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

// encodeLevelLower renders levels for the NDJSON file.
func encodeLevelLower(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("trace")
		return
	}
	zapcore.LowercaseLevelEncoder(l, enc)
}

// LevelLabel is the display-sink rendering of a level.
func LevelLabel(l zapcore.Level) string {
	if l == TraceLevel {
		return "TRACE"
	}
	return l.CapitalString()
}

// andEnabler gates on two enablers at once. Used to combine the pipeline
// switch with a sink-specific gate.
type andEnabler struct {
	a, b zapcore.LevelEnabler
}

func (e andEnabler) Enabled(l zapcore.Level) bool {
	return e.a.Enabled(l) && e.b.Enabled(l)
}
