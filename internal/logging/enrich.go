package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// enrichCore stamps every record with the OS thread id before handing
// it to the wrapped core. Process-constant fields (pid) are attached
// once on the root logger instead.
type enrichCore struct {
	zapcore.Core
}

// enrichEach wraps every sink core separately. Wrapping the tee instead
// would gate on the tee's Enabled, which ORs the sink gates together:
// one open sink would pull records into all of them.
func enrichEach(cores []zapcore.Core) []zapcore.Core {
	wrapped := make([]zapcore.Core, len(cores))
	for i, c := range cores {
		wrapped[i] = enrichCore{Core: c}
	}
	return wrapped
}

func (c enrichCore) With(fields []zapcore.Field) zapcore.Core {
	return enrichCore{Core: c.Core.With(fields)}
}

func (c enrichCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c enrichCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	// The field slice belongs to the checked entry; grow a copy instead
	// of mutating shared backing storage.
	enriched := make([]zapcore.Field, 0, len(fields)+1)
	enriched = append(enriched, fields...)
	enriched = append(enriched, zap.Int("tid", threadID()))
	return c.Core.Write(ent, enriched)
}
