package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// rollingFile appends NDJSON lines to date-stamped files, starting a new
// file on day change or when the current one crosses maxBytes. Files are
// opened with O_APPEND and shared-write semantics so a second process
// instance can log to the same path without corrupting either stream.
//
// For a configured path logs/slate.ndjson the files on disk are
// logs/slate-20260826.ndjson, logs/slate-20260826.001.ndjson, and so on.
type rollingFile struct {
	dir      string
	base     string
	ext      string
	maxBytes int64
	now      func() time.Time

	mu   sync.Mutex
	f    *os.File
	day  string
	seq  int
	size int64
}

func newRollingFile(path string, maxBytes int64) *rollingFile {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	if ext == "" {
		ext = ".ndjson"
	}
	return &rollingFile{
		dir:      filepath.Dir(path),
		base:     base,
		ext:      ext,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (r *rollingFile) fileName(day string, seq int) string {
	if seq == 0 {
		return fmt.Sprintf("%s-%s%s", r.base, day, r.ext)
	}
	return fmt.Sprintf("%s-%s.%03d%s", r.base, day, seq, r.ext)
}

func (r *rollingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensure(len(p)); err != nil {
		return 0, err
	}

	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

// ensure opens or rolls the file so the next n bytes fit. Size tracking
// counts this process's writes plus the size found at open; a sibling
// process appending to the same file rolls on its own schedule.
func (r *rollingFile) ensure(n int) error {
	day := r.now().Format("20060102")

	if r.f == nil || day != r.day {
		return r.open(day)
	}

	if r.maxBytes > 0 && r.size > 0 && r.size+int64(n) > r.maxBytes {
		next := r.seq + 1
		_ = r.f.Close()
		r.f = nil
		return r.openAt(day, next)
	}

	return nil
}

// open scans for today's newest non-full file and appends to it, so a
// restart keeps filling the same file instead of leaving fragments.
func (r *rollingFile) open(day string) error {
	seq := 0
	for {
		info, err := os.Stat(filepath.Join(r.dir, r.fileName(day, seq)))
		if err != nil {
			break
		}
		if r.maxBytes <= 0 || info.Size() < r.maxBytes {
			break
		}
		seq++
	}
	return r.openAt(day, seq)
}

func (r *rollingFile) openAt(day string, seq int) error {
	if r.f != nil {
		_ = r.f.Close()
		r.f = nil
	}

	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return err
	}

	path := filepath.Join(r.dir, r.fileName(day, seq))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	size := int64(0)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	r.f = f
	r.day = day
	r.seq = seq
	r.size = size
	return nil
}

func (r *rollingFile) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	return r.f.Sync()
}

func (r *rollingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// CurrentPath reports the file currently being written, for display in
// the session footer. Empty until the first write.
func (r *rollingFile) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return ""
	}
	return filepath.Join(r.dir, r.fileName(r.day, r.seq))
}
