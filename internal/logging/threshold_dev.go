//go:build dev

package logging

import "go.uber.org/zap/zapcore"

// Dev builds drop the session log pane gate to debug. Trace stays
// file-only even here; frame-by-frame noise would drown the pane.
const displayMinLevel = zapcore.DebugLevel
