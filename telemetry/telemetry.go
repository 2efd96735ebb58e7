// Package telemetry wraps github.com/tliron/commonlog, the logging
// library chazu-maggie/server/lsp.go already depends on
// (its `commonlog.NewInfoMessage` call and the
// `_ "github.com/tliron/commonlog/simple"` sink import), behind a
// narrow Logger/Tracer pair so the rest of this module never imports
// commonlog directly.
package telemetry

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Logger is a structured logger scoped to one component name, matching
// commonlog's own `commonlog.GetLogger(name)` scoping convention.
type Logger struct {
	log  commonlog.Logger
	name string
}

// NewLogger returns a Logger scoped to name (e.g. "eval", "lspcore").
func NewLogger(name string) *Logger {
	return &Logger{log: commonlog.GetLogger(name), name: name}
}

// Name returns the component name this Logger was scoped to.
func (l *Logger) Name() string { return l.name }

func (l *Logger) Debug(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *Logger) Warning(format string, args ...any) {
	l.log.Warningf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log.Errorf(format, args...)
}

// Event is one append-only tracer entry.
type Event struct {
	Component string
	Message   string
}

// Tracer is an append-only, thread-safe event log (spec.md §5's
// "append-only and thread-safe" requirement for reactor tracing),
// backed by the same commonlog API Logger uses so tracer output lands
// in the same sink as regular log lines.
type Tracer struct {
	mu     sync.Mutex
	events []Event
	log    commonlog.Logger
}

// NewTracer returns an empty Tracer that also forwards every recorded
// event to commonlog at Info level under name.
func NewTracer(name string) *Tracer {
	return &Tracer{log: commonlog.GetLogger(name)}
}

// Record appends an event and forwards it to the underlying logger.
// Safe for concurrent use.
func (t *Tracer) Record(component, message string) {
	t.mu.Lock()
	t.events = append(t.events, Event{Component: component, Message: message})
	t.mu.Unlock()
	t.log.Infof("%s: %s", component, message)
}

// Events returns a snapshot copy of every event recorded so far.
func (t *Tracer) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// String renders the full trace, one event per line, for diagnostics.
func (t *Tracer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := ""
	for _, e := range t.events {
		s += fmt.Sprintf("[%s] %s\n", e.Component, e.Message)
	}
	return s
}
