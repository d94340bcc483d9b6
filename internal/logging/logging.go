package logging

import (
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/slate-tools/cli/internal/paths"
)

const (
	defaultQueueSize   = 512
	defaultDisplaySize = 400
	defaultMaxFileSize = 8 << 20
)

// Options configure the pipeline. Zero values fall back to the
// defaults; the binary runs with DefaultOptions.
type Options struct {
	// FilePath is where the NDJSON sink writes. Empty disables the
	// file sink.
	FilePath string

	// FileMaxBytes caps a single log file before it rolls over.
	FileMaxBytes int64

	// QueueSize bounds the async queues feeding the file and display
	// sinks.
	QueueSize int

	// DisplaySize caps the record buffer backing the session log pane.
	DisplaySize int

	// Console receives the human-readable sink. Defaults to stderr.
	Console io.Writer
}

// DefaultOptions resolves the log location and returns production
// settings.
func DefaultOptions() Options {
	return Options{
		FilePath:     paths.LogFilePath(),
		FileMaxBytes: defaultMaxFileSize,
		QueueSize:    defaultQueueSize,
		DisplaySize:  defaultDisplaySize,
		Console:      os.Stderr,
	}
}

// Pipeline owns the process logger and every sink behind it. Build one
// with New, pass Logger around, and Close it on the way out.
type Pipeline struct {
	Logger   *zap.Logger
	Switches *Switches
	Displays *DisplayBuffer

	file    *asyncWriter
	fileOut *rollingFile
	display *displaySink
}

// New assembles the pipeline. It never fails: the file sink opens
// lazily on first write, and a sink that cannot write degrades to
// counting drops instead of taking the process down with it.
func New(sw *Switches, opts Options) *Pipeline {
	if sw == nil {
		sw = NewSwitches(false)
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.FileMaxBytes <= 0 {
		opts.FileMaxBytes = defaultMaxFileSize
	}

	p := &Pipeline{
		Switches: sw,
		Displays: newDisplayBuffer(opts.DisplaySize),
	}

	cores := make([]zapcore.Core, 0, 3)

	cores = append(cores, zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(opts.Console)),
		andEnabler{sw.Pipeline, sw.Console},
	))

	if opts.FilePath != "" {
		p.fileOut = newRollingFile(opts.FilePath, opts.FileMaxBytes)
		p.file = newAsyncWriter(p.fileOut, opts.QueueSize)
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			p.file,
			sw.Pipeline,
		))
	}

	p.display = newDisplaySink(p.Displays, opts.QueueSize)
	cores = append(cores, newDisplayCore(
		andEnabler{sw.Pipeline, displayMinLevel},
		p.display,
	))

	p.Logger = zap.New(
		zapcore.NewTee(enrichEach(cores)...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).With(zap.Int("pid", os.Getpid()))

	return p
}

// Bootstrap returns a console-only logger for the window before the
// real pipeline exists. Anything that fails that early has nowhere
// else to report to.
func Bootstrap() *zap.Logger {
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	))
}

// Close flushes queued records and tears the sinks down. The logger
// must not be used afterwards.
func (p *Pipeline) Close() error {
	_ = p.Logger.Sync()

	var err error
	if p.display != nil {
		err = multierr.Append(err, p.display.Close())
	}
	if p.file != nil {
		err = multierr.Append(err, p.file.Close())
	}
	return err
}

// Dropped reports how many records the bounded queues discarded.
func (p *Pipeline) Dropped() uint64 {
	var n uint64
	if p.file != nil {
		n += p.file.Dropped()
	}
	if p.display != nil {
		n += p.display.Dropped()
	}
	return n
}

// LogPath reports the file currently receiving NDJSON records. Empty
// when the file sink is disabled or has not written yet.
func (p *Pipeline) LogPath() string {
	if p.fileOut == nil {
		return ""
	}
	return p.fileOut.CurrentPath()
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:             "ts",
		LevelKey:            "level",
		NameKey:             "logger",
		CallerKey:           "caller",
		MessageKey:          "msg",
		StacktraceKey:       "stacktrace",
		LineEnding:          zapcore.DefaultLineEnding,
		EncodeLevel:         encodeLevelLower,
		EncodeTime:          zapcore.ISO8601TimeEncoder,
		EncodeDuration:      zapcore.StringDurationEncoder,
		EncodeCaller:        zapcore.ShortCallerEncoder,
		NewReflectedEncoder: newValueEncoder,
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := fileEncoderConfig()
	cfg.EncodeLevel = encodeLevelUpper
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.ConsoleSeparator = "  "
	return cfg
}
