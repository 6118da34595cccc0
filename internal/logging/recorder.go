package logging

import (
	"fmt"
	"sync"
)

// Entry is a single captured log line.
type Entry struct {
	Level   LogLevel
	Message string
}

// Recorder is a Logger that captures entries for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level LogLevel, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Debug(format string, args ...any) { r.record(DEBUG, format, args...) }
func (r *Recorder) Info(format string, args ...any)  { r.record(INFO, format, args...) }
func (r *Recorder) Warn(format string, args ...any)  { r.record(WARN, format, args...) }
func (r *Recorder) Error(format string, args ...any) { r.record(ERROR, format, args...) }

// Entries returns a copy of all captured entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Filter returns captured entries at the given level.
func (r *Recorder) Filter(level LogLevel) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
