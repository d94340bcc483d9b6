//go:build !dev

package logging

import "go.uber.org/zap/zapcore"

// Release builds keep the session log pane at info and above.
const displayMinLevel = zapcore.InfoLevel
