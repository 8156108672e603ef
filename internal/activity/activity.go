// internal/activity/activity.go
//
// Bounded activity log for the UI's diagnostics panel.
// Entries are kept in a fixed-capacity ring; the oldest entry is overwritten
// once the ring is full. The log only observes: nothing reads it back into
// game state. Every entry is mirrored to zerolog.

package activity

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultCapacity matches the panel's visible window.
const DefaultCapacity = 10

// Level tags an entry for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Entry is one line of the activity log.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
}

// Log is a ring buffer of entries. Safe for concurrent use.
type Log struct {
	mu     sync.Mutex
	buf    []Entry
	next   int // slot the next entry goes into
	full   bool
	now    func() time.Time
	logger zerolog.Logger
}

// New constructs a Log holding at most capacity entries (DefaultCapacity
// if capacity <= 0).
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		buf:    make([]Entry, capacity),
		now:    time.Now,
		logger: log.With().Str("component", "activity").Logger(),
	}
}

// Add appends an entry.
func (l *Log) Add(level Level, msg string) {
	l.mu.Lock()
	e := Entry{Time: l.now(), Level: level, Message: msg}
	l.buf[l.next] = e
	l.next = (l.next + 1) % len(l.buf)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	ev := l.logger.Info()
	if level == LevelError {
		ev = l.logger.Warn()
	}
	ev.Str("level_tag", string(level)).Msg(msg)
}

// Infof, Successf and Errorf are formatting shorthands for Add.
func (l *Log) Infof(format string, args ...any) { l.Add(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *Log) Successf(format string, args ...any) {
	l.Add(LevelSuccess, fmt.Sprintf(format, args...))
}
func (l *Log) Errorf(format string, args ...any) { l.Add(LevelError, fmt.Sprintf(format, args...)) }

// Entries returns the retained entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.full {
		return append([]Entry(nil), l.buf[:l.next]...)
	}
	out := make([]Entry, 0, len(l.buf))
	out = append(out, l.buf[l.next:]...)
	return append(out, l.buf[:l.next]...)
}

// Capacity reports the ring size.
func (l *Log) Capacity() int { return len(l.buf) }
