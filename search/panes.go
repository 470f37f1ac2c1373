package search

// Pane is one named body of text, such as the input, the output or the log.
type Pane struct {
	Name string
	Text string
}

// PaneResult holds the matches found in one pane.
type PaneResult struct {
	Pane    string  `json:"pane"`
	Matches []Match `json:"matches"`
}

// Results is the outcome of searching several panes.
type Results []PaneResult

// Panes searches every pane in order.
func Panes(panes []Pane, query string, opts Options) Results {
	out := make(Results, 0, len(panes))
	for _, p := range panes {
		out = append(out, PaneResult{Pane: p.Name, Matches: Find(p.Text, query, opts)})
	}
	return out
}

// Total returns the number of matches across all panes.
func (r Results) Total() int {
	n := 0
	for _, pr := range r {
		n += len(pr.Matches)
	}
	return n
}

// Hit addresses one match inside Results.
type Hit struct {
	Pane  string
	Index int
	Match Match
}

// Cursor steps through every match of a Results value, in pane order.
// The zero position is before the first match.
type Cursor struct {
	hits []Hit
	pos  int
}

// NewCursor returns a cursor over r.
func NewCursor(r Results) *Cursor {
	c := &Cursor{pos: -1}
	for _, pr := range r {
		for i, m := range pr.Matches {
			c.hits = append(c.hits, Hit{Pane: pr.Pane, Index: i, Match: m})
		}
	}
	return c
}

// Len returns the number of matches.
func (c *Cursor) Len() int {
	return len(c.hits)
}

// Position returns the 0-based index of the current match, or -1.
func (c *Cursor) Position() int {
	return c.pos
}

// Current returns the current match.
func (c *Cursor) Current() (Hit, bool) {
	if c.pos < 0 || c.pos >= len(c.hits) {
		return Hit{}, false
	}
	return c.hits[c.pos], true
}

// Next advances to the next match, wrapping after the last one.
func (c *Cursor) Next() (Hit, bool) {
	if len(c.hits) == 0 {
		return Hit{}, false
	}
	c.pos = (c.pos + 1) % len(c.hits)
	return c.hits[c.pos], true
}

// Prev moves to the previous match, wrapping before the first one.
func (c *Cursor) Prev() (Hit, bool) {
	if len(c.hits) == 0 {
		return Hit{}, false
	}
	if c.pos <= 0 {
		c.pos = len(c.hits) - 1
	} else {
		c.pos--
	}
	return c.hits[c.pos], true
}
