// Package actionlog appends a human readable trail of editor actions to a
// file from a background goroutine. Records are best effort: anything still
// queued when the process dies is lost.
package actionlog

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	// TimeLayout renders timestamps as day/month/year hour:minute:second.
	TimeLayout = "02/01/2006 15:04:05"
	// DefaultInterval is how often queued records are flushed.
	DefaultInterval = time.Second
	// DefaultFile is used when no log file is configured.
	DefaultFile = "actions_log.txt"
)

// Format renders one log record.
func Format(t time.Time, file, action string) string {
	return fmt.Sprintf("%s [%s] %s", t.Format(TimeLayout), file, action)
}

// Logger queues records and writes them from a single goroutine. A nil
// *Logger discards everything.
type Logger struct {
	path     string
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	queue []string

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Logger.
type Option func(*Logger)

// WithInterval overrides the flush interval.
func WithInterval(d time.Duration) Option {
	return func(l *Logger) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(l *Logger) { l.now = now } }

// New starts a Logger appending to path.
func New(path string, opts ...Option) *Logger {
	if path == "" {
		path = DefaultFile
	}
	l := &Logger{
		path:     path,
		interval: DefaultInterval,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(l)
	}
	go l.run()
	return l
}

// Path returns the file being appended to.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log queues action against file. It never blocks on I/O.
func (l *Logger) Log(file, action string) {
	if l == nil {
		return
	}
	line := Format(l.now(), file, action)
	l.mu.Lock()
	l.queue = append(l.queue, line)
	l.mu.Unlock()
}

// Logf is Log with formatting.
func (l *Logger) Logf(file, format string, args ...any) {
	l.Log(file, fmt.Sprintf(format, args...))
}

// Close stops the writer after a final flush attempt.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.closeOnce.Do(func() { close(l.stop) })
	<-l.done
	return nil
}

func (l *Logger) run() {
	defer close(l.done)
	t := time.NewTicker(l.interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			l.flush()
		case <-l.stop:
			l.flush()
			return
		}
	}
}

func (l *Logger) flush() {
	l.mu.Lock()
	lines := l.queue
	l.queue = nil
	l.mu.Unlock()
	if len(lines) == 0 {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("action log: %v", err)
		return
	}
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		log.Printf("action log: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Printf("action log: %v", err)
	}
}
