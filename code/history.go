package code

import "sync"

const defaultHistorySize = 32

// History keeps the last N reports in memory (circular buffer).
type History struct {
	mu       sync.RWMutex
	reports  []Report
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewHistory creates a History holding up to capacity reports.
// A non-positive capacity selects the default of 32.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &History{
		reports:  make([]Report, capacity),
		capacity: capacity,
	}
}

// Add stores a report, evicting the oldest when full.
func (h *History) Add(r Report) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reports[h.head] = r
	h.head = (h.head + 1) % h.capacity
	if h.head == 0 {
		h.full = true
	}
}

// Snapshot returns the stored reports, oldest first.
func (h *History) Snapshot() []Report {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.full {
		out := make([]Report, h.head)
		copy(out, h.reports[:h.head])
		return out
	}
	out := make([]Report, h.capacity)
	copy(out, h.reports[h.head:])
	copy(out[h.capacity-h.head:], h.reports[:h.head])
	return out
}

// Last returns the most recent report.
func (h *History) Last() (Report, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.full && h.head == 0 {
		return Report{}, false
	}
	i := (h.head - 1 + h.capacity) % h.capacity
	return h.reports[i], true
}

// Len returns the number of stored reports.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.full {
		return h.capacity
	}
	return h.head
}
