package console

import (
	"fmt"
	"sync"
)

// Severity tags a captured log entry.
type Severity string

const (
	// SeverityInfo is used for informational engine markers and console.info.
	SeverityInfo Severity = "info"
	// SeverityLog is used for console.log and return values.
	SeverityLog Severity = "log"
	// SeverityWarn is used for console.warn and remediation hints.
	SeverityWarn Severity = "warn"
	// SeverityError is used for console.error and failure reports.
	SeverityError Severity = "error"
	// SeveritySuccess marks a run that completed normally.
	SeveritySuccess Severity = "success"
)

// Severities lists every severity in display order.
var Severities = []Severity{SeverityInfo, SeverityLog, SeverityWarn, SeverityError, SeveritySuccess}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityLog, SeverityWarn, SeverityError, SeveritySuccess:
		return true
	}
	return false
}

// ParseSeverity converts a string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// Entry is one captured log line. Entries are values; once appended to a
// Buffer they are never modified.
type Entry struct {
	Kind    Severity `json:"kind" msgpack:"kind"`
	Message string   `json:"message" msgpack:"message"`
}

// Buffer is an ordered, append-only log for a single execution.
// It is safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds an entry to the end of the buffer.
func (b *Buffer) Append(kind Severity, message string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.entries = append(b.entries, Entry{Kind: kind, Message: message})
	b.mu.Unlock()
}

// AppendEntries adds entries in order.
func (b *Buffer) AppendEntries(entries ...Entry) {
	if b == nil || len(entries) == 0 {
		return
	}
	b.mu.Lock()
	b.entries = append(b.entries, entries...)
	b.mu.Unlock()
}

// Entries returns a copy of the buffered entries.
func (b *Buffer) Entries() []Entry {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
