package logging

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/slate-tools/cli/internal/media"
)

// Record is one entry in the display sink, pre-rendered enough for the
// session log pane to show without touching zap types beyond the level.
type Record struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  string
}

// DisplayBuffer keeps the most recent records for the interactive
// session. Oldest entries fall off once capacity is reached. Safe for
// concurrent use; the TUI polls Snapshot on its tick.
type DisplayBuffer struct {
	mu      sync.Mutex
	records []Record
	max     int
	total   uint64
}

func newDisplayBuffer(max int) *DisplayBuffer {
	if max <= 0 {
		max = defaultDisplaySize
	}
	return &DisplayBuffer{
		records: make([]Record, 0, max),
		max:     max,
	}
}

func (b *DisplayBuffer) push(r Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total++
	b.records = append(b.records, r)
	if len(b.records) > b.max {
		b.records = b.records[1:]
	}
}

// Snapshot returns a copy of the buffered records, oldest first.
func (b *DisplayBuffer) Snapshot() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Total reports how many records have ever passed through the buffer,
// including ones already evicted.
func (b *DisplayBuffer) Total() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// displaySink funnels records into a DisplayBuffer through a bounded
// queue so the logging hot path never contends with the TUI's reads.
type displaySink struct {
	buf *DisplayBuffer

	mu     sync.RWMutex
	closed bool

	ch   chan Record
	done chan struct{}

	dropped atomic.Uint64
}

func newDisplaySink(buf *DisplayBuffer, queueSize int) *displaySink {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	s := &displaySink{
		buf:  buf,
		ch:   make(chan Record, queueSize),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *displaySink) run() {
	for rec := range s.ch {
		s.buf.push(rec)
	}
	close(s.done)
}

func (s *displaySink) enqueue(rec Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.dropped.Add(1)
		return
	}

	select {
	case s.ch <- rec:
	default:
		s.dropped.Add(1)
	}
}

func (s *displaySink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	<-s.done
	return nil
}

func (s *displaySink) Dropped() uint64 {
	return s.dropped.Load()
}

// displayCore adapts the sink to zapcore. With-fields accumulate per
// logger clone, matching the behavior of the real output cores.
type displayCore struct {
	zapcore.LevelEnabler
	sink   *displaySink
	fields []zapcore.Field
}

func newDisplayCore(enab zapcore.LevelEnabler, sink *displaySink) zapcore.Core {
	return &displayCore{LevelEnabler: enab, sink: sink}
}

func (c *displayCore) With(fields []zapcore.Field) zapcore.Core {
	clone := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone = append(clone, c.fields...)
	clone = append(clone, fields...)
	return &displayCore{LevelEnabler: c.LevelEnabler, sink: c.sink, fields: clone}
}

func (c *displayCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *displayCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)

	c.sink.enqueue(Record{
		Time:    ent.Time,
		Level:   ent.Level,
		Logger:  ent.LoggerName,
		Message: ent.Message,
		Fields:  renderFields(merged),
	})
	return nil
}

func (c *displayCore) Sync() error {
	return nil
}

// renderFields flattens structured fields to a compact "k=v" line.
// Capture-domain values render through their String form, same as the
// file sink's reflected encoder.
func renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		// Process bookkeeping stays out of the human pane.
		if k == "pid" || k == "tid" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, renderValue(enc.Fields[k])))
	}
	return strings.Join(parts, " ")
}

func renderValue(v interface{}) string {
	switch t := v.(type) {
	case media.Device:
		return t.Name
	case *media.Device:
		if t == nil {
			return ""
		}
		return t.Name
	case fmt.Stringer:
		return t.String()
	case string:
		return t
	case error:
		return t.Error()
	}
	return fmt.Sprintf("%v", v)
}
