package logging

import (
	"io"
	"sync"
	"sync/atomic"
)

// asyncWriter decouples log producers from sink I/O. Writes land on a
// bounded queue drained by a single consumer goroutine; when the queue
// is full the record is dropped and counted rather than blocking the
// caller. Implements zapcore.WriteSyncer.
type asyncWriter struct {
	out io.Writer

	mu     sync.RWMutex
	closed bool

	ch    chan []byte
	flush chan chan struct{}
	done  chan struct{}

	dropped atomic.Uint64
}

func newAsyncWriter(out io.Writer, queueSize int) *asyncWriter {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	w := &asyncWriter{
		out:   out,
		ch:    make(chan []byte, queueSize),
		flush: make(chan chan struct{}),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	for {
		select {
		case b, ok := <-w.ch:
			if !ok {
				w.syncOut()
				close(w.done)
				return
			}
			_, _ = w.out.Write(b)
		case ack := <-w.flush:
			w.drain()
			w.syncOut()
			close(ack)
		}
	}
}

// drain empties everything currently queued. Only the consumer calls it.
func (w *asyncWriter) drain() {
	for {
		select {
		case b, ok := <-w.ch:
			if !ok {
				return
			}
			_, _ = w.out.Write(b)
		default:
			return
		}
	}
}

func (w *asyncWriter) syncOut() {
	if s, ok := w.out.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

// Write enqueues a copy of p. zap reuses the buffer after Write
// returns, so the copy is mandatory. Never blocks and never fails:
// overflow and post-close writes count as drops.
func (w *asyncWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.dropped.Add(1)
		return len(p), nil
	}

	b := make([]byte, len(p))
	copy(b, p)

	select {
	case w.ch <- b:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

// Sync blocks until everything queued so far has reached the underlying
// writer.
func (w *asyncWriter) Sync() error {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return nil
	}
	ack := make(chan struct{})
	w.mu.RUnlock()

	select {
	case w.flush <- ack:
		<-ack
	case <-w.done:
	}
	return nil
}

// Close drains the queue, stops the consumer, and closes the underlying
// writer if it is a Closer. Safe to call more than once.
func (w *asyncWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.ch)
	w.mu.Unlock()

	<-w.done

	if c, ok := w.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Dropped reports how many records were discarded because the queue was
// full or the writer was closed.
func (w *asyncWriter) Dropped() uint64 {
	return w.dropped.Load()
}
