package console

import "sync"

// Func is one logging channel.
type Func func(args ...any)

// Channels holds the four interceptable logging channels.
type Channels struct {
	Info  Func
	Log   Func
	Warn  Func
	Error Func
}

// get returns the channel for sev, or nil.
func (c Channels) get(sev Severity) Func {
	switch sev {
	case SeverityInfo:
		return c.Info
	case SeverityLog:
		return c.Log
	case SeverityWarn:
		return c.Warn
	case SeverityError:
		return c.Error
	}
	return nil
}

// Sink receives console calls made by an executing script.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: sinks are best-effort and must not panic.
type Sink interface {
	Info(args ...any)
	Log(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// Console is a logging channel table shared by executions.
// It is safe for concurrent use.
//
// Scripts never call the table directly: each run logs through the Capture
// that Intercept returns, which records into that run's buffer and forwards
// to the original channels. The Info, Log, Warn and Error methods are for
// host code that shares the Console with running scripts. While any capture
// is armed their output lands in every armed buffer.
type Console struct {
	mu       sync.Mutex
	original Channels
	current  Channels
	active   []*Capture
}

// New creates a Console whose channels start as original. Nil channels are
// treated as no-ops.
func New(original Channels) *Console {
	return &Console{original: original, current: original}
}

// Discard returns a Console whose original channels drop everything.
func Discard() *Console {
	return New(Channels{})
}

// Channels returns a snapshot of the channels currently installed.
func (c *Console) Channels() Channels {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Original returns the channels the Console was created with.
func (c *Console) Original() Channels {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original
}

// Depth returns the number of captures currently armed.
func (c *Console) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

// Intercepted reports whether any capture is armed.
func (c *Console) Intercepted() bool {
	return c.Depth() > 0
}

// Info calls the installed info channel.
func (c *Console) Info(args ...any) { c.call(SeverityInfo, args) }

// Log calls the installed log channel.
func (c *Console) Log(args ...any) { c.call(SeverityLog, args) }

// Warn calls the installed warn channel.
func (c *Console) Warn(args ...any) { c.call(SeverityWarn, args) }

// Error calls the installed error channel.
func (c *Console) Error(args ...any) { c.call(SeverityError, args) }

func (c *Console) call(sev Severity, args []any) {
	c.mu.Lock()
	fn := c.current.get(sev)
	c.mu.Unlock()
	invoke(fn, args)
}

// forward sends args to the original channel for sev.
func (c *Console) forward(sev Severity, args []any) {
	c.mu.Lock()
	fn := c.original.get(sev)
	c.mu.Unlock()
	invoke(fn, args)
}

// invoke calls fn, swallowing panics from host channels.
func invoke(fn Func, args []any) {
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(args...)
}

// Intercept arms the Console for one execution. Until the returned capture
// is released, every channel call is appended to buf and forwarded to the
// original channel. Intercepts nest: the originals are restored when the
// last capture is released.
func (c *Console) Intercept(buf *Buffer) *Capture {
	cp := &Capture{console: c, buf: buf}
	c.mu.Lock()
	if len(c.active) == 0 {
		c.current = Channels{
			Info:  c.hook(SeverityInfo),
			Log:   c.hook(SeverityLog),
			Warn:  c.hook(SeverityWarn),
			Error: c.hook(SeverityError),
		}
	}
	c.active = append(c.active, cp)
	c.mu.Unlock()
	return cp
}

func (c *Console) hook(sev Severity) Func {
	return func(args ...any) {
		msg := Format(args...)
		c.mu.Lock()
		active := make([]*Capture, len(c.active))
		copy(active, c.active)
		c.mu.Unlock()
		for _, cp := range active {
			cp.buf.Append(sev, msg)
		}
		c.forward(sev, args)
	}
}

func (c *Console) release(cp *Capture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, a := range c.active {
		if a == cp {
			c.active = append(c.active[:i], c.active[i+1:]...)
			break
		}
	}
	if len(c.active) == 0 {
		c.current = c.original
	}
}

// Capture is one armed interception. It records into its own buffer and is
// the Sink handed to the engine for that execution.
type Capture struct {
	console *Console
	buf     *Buffer
	once    sync.Once
}

// Buffer returns the buffer this capture records into.
func (cp *Capture) Buffer() *Buffer {
	return cp.buf
}

// Release disarms the capture. It is safe to call more than once.
func (cp *Capture) Release() {
	cp.once.Do(func() {
		cp.console.release(cp)
	})
}

// Info records an info entry and forwards it to the original channel.
func (cp *Capture) Info(args ...any) { cp.record(SeverityInfo, args) }

// Log records a log entry and forwards it to the original channel.
func (cp *Capture) Log(args ...any) { cp.record(SeverityLog, args) }

// Warn records a warn entry and forwards it to the original channel.
func (cp *Capture) Warn(args ...any) { cp.record(SeverityWarn, args) }

// Error records an error entry and forwards it to the original channel.
func (cp *Capture) Error(args ...any) { cp.record(SeverityError, args) }

func (cp *Capture) record(sev Severity, args []any) {
	cp.buf.Append(sev, Format(args...))
	cp.console.forward(sev, args)
}
