// Package lspcore implements the editor-facing core spec.md §4.5
// describes: document lifecycle, diagnostics, a versioned hover index,
// and completion — independent of any specific wire protocol. The
// `cmd/infernolsp` binary wires this core to `github.com/tliron/glsp`,
// the same framework chazu-maggie/server/lsp.go speaks, but Core itself
// takes no dependency on glsp's protocol types so it can be tested
// directly (see parseandinfer_test.go) the way server/lsp.go's own VM
// logic (complete/hover/definition) is plain functions its LspServer
// wrapper calls into.
package lspcore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shulhi/inferno/reactor"
)

// Position is a zero-based (line, character) editor position, matching
// LSP's own coordinate convention.
type Position struct {
	Line      int
	Character int
}

// Range is a span from Start to End in document coordinates; hover
// lookup (contains) counts both ends as inside the span.
type Range struct {
	Start Position
	End   Position
}

// contains reports whether pos falls within r (inclusive of both ends,
// since a hover query at the exact boundary of a token should still
// resolve to it).
func (r Range) contains(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}

// size is a span's rough "area" in characters, used to pick the
// smallest containing range when several hover entries overlap (e.g. a
// sub-expression nested inside a larger one).
func (r Range) size() int {
	lines := r.End.Line - r.Start.Line
	return lines*1_000_000 + (r.End.Character - r.Start.Character)
}

// Severity mirrors LSP's DiagnosticSeverity levels without depending on
// glsp's protocol package.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is one parse/type error or warning attached to a range.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Message  string
}

// HoverEntry is one queryable span of the hover index: the range it
// covers and the markdown-ish text to show for it.
type HoverEntry struct {
	Range Range
	Text  string
}

// CompletionItem is one candidate the editor can insert.
type CompletionItem struct {
	Label  string
	Detail string
	Kind   string
}

// Result is what a ParseAndInfer implementation returns for one
// document snapshot: everything Core needs to update diagnostics and
// the hover index. spec.md §4.5 treats the elaborated expression itself
// as opaque to the core — only hoverRanges and diagnostics are
// consumed.
type Result struct {
	Hovers      []HoverEntry
	Diagnostics []Diagnostic
}

// ParseAndInfer is the typed boundary to the parser/inferencer this
// module does not implement (spec.md §1's "out of scope"). A host
// supplies a concrete implementation; lspcore only calls it.
type ParseAndInfer interface {
	ParseAndInfer(ctx context.Context, source string) (Result, error)
}

// BeforeParseHook and AfterParseHook fire around every ParseAndInfer
// call, tagged with a fresh request ID and timestamp (spec.md §4.5),
// e.g. for tracing slow parses or correlating a diagnostic batch back to
// the edit that triggered it. AfterParseHook also carries the parse's
// own (Result, error) and returns the pair Core should actually act on
// — spec.md §4.5's `afterParse((uuid, utc), result) → result'` — so a
// host can rewrite diagnostics (e.g. suppress one, add a metrics-derived
// warning) before they reach the hover index or the DiagnosticsSink.
// A hook that only observes returns its inputs unchanged.
type (
	BeforeParseHook func(id uuid.UUID, at time.Time)
	AfterParseHook  func(id uuid.UUID, at time.Time, result Result, err error) (Result, error)
)

// DiagnosticsSink receives a document's latest diagnostics for
// publishing to the editor; cmd/infernolsp's implementation forwards
// into glsp's PublishDiagnostics notification.
type DiagnosticsSink func(uri string, diagnostics []Diagnostic)

type docState struct {
	text    string
	version int
}

// Core holds all per-session LSP state: the document cache, the
// versioned hover index, and the hook/sink wiring. Every mutating
// operation runs through a Reactor so concurrent editor notifications
// (didChange racing didClose, two hovers overlapping a reparse) never
// observe or produce a torn document state, the same single-goroutine
// discipline chazu-maggie/server/vm_worker.go's VMWorker gives VM access.
type Core struct {
	parser ParseAndInfer
	react  *reactor.Reactor

	docs map[string]*docState

	hover *hoverIndex

	reservedWords []string
	moduleNames   []string
	preludeNames  []string
	getIdents     func() []*string

	beforeParse BeforeParseHook
	afterParse  AfterParseHook
	sink        DiagnosticsSink
}

// Option configures a Core at construction time.
type Option func(*Core)

// WithReservedWords supplies the keyword set completion always offers.
func WithReservedWords(words []string) Option {
	return func(c *Core) { c.reservedWords = words }
}

// WithModuleNames supplies the bare module-name completion source (e.g.
// "Core", "Array") — spec.md §4.5's "module-name completions", distinct
// from the qualified names WithPreludeCompletions supplies.
func WithModuleNames(names []string) Option {
	return func(c *Core) { c.moduleNames = names }
}

// WithPreludeCompletions supplies "Module.name"-style qualified prelude
// completions (e.g. "Array.map", "Array.range") — spec.md §4.5's
// "prelude-derived completions" and §8 scenario 8's exact example.
func WithPreludeCompletions(names []string) Option {
	return func(c *Core) { c.preludeNames = names }
}

// WithGetIdents wires a host's externally-defined identifier source
// (prelude.GetIdents) into completion.
func WithGetIdents(f func() []*string) Option {
	return func(c *Core) { c.getIdents = f }
}

// WithHooks wires BeforeParse/AfterParse tracing hooks.
func WithHooks(before BeforeParseHook, after AfterParseHook) Option {
	return func(c *Core) { c.beforeParse, c.afterParse = before, after }
}

// WithDiagnosticsSink wires where publishDiagnostics-equivalent output
// goes.
func WithDiagnosticsSink(sink DiagnosticsSink) Option {
	return func(c *Core) { c.sink = sink }
}

// WithMaxHoverVersionsPerDoc bounds the hover index LRU (SPEC_FULL.md §9
// decision 1); 0 keeps the default of 4.
func WithMaxHoverVersionsPerDoc(n int) Option {
	return func(c *Core) {
		if n > 0 {
			c.hover.maxVersions = n
		}
	}
}

// New constructs a Core backed by parser, with its own Reactor.
func New(parser ParseAndInfer, opts ...Option) *Core {
	c := &Core{
		parser: parser,
		react:  reactor.New(64),
		docs:   make(map[string]*docState),
		hover:  newHoverIndex(4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stop shuts down the Core's Reactor. Call once on LSP shutdown.
func (c *Core) Stop() { c.react.Stop() }

// DidOpen records a freshly opened document and runs the first parse.
func (c *Core) DidOpen(ctx context.Context, uri, text string, version int) {
	c.react.Submit(func() { c.openOrChange(ctx, uri, text, version) })
}

// DidChange updates a document's text to a new version and reparses.
func (c *Core) DidChange(ctx context.Context, uri, text string, version int) {
	c.react.Submit(func() { c.openOrChange(ctx, uri, text, version) })
}

// DidClose forgets a document. Its hover history is left in the index
// until evicted by the LRU — closing a tab is not a reason to discard
// diagnostics history a reopened buffer might still want.
func (c *Core) DidClose(uri string) {
	c.react.Submit(func() { delete(c.docs, uri) })
}

func (c *Core) openOrChange(ctx context.Context, uri, text string, version int) {
	c.docs[uri] = &docState{text: text, version: version}

	id := uuid.New()
	if c.beforeParse != nil {
		c.beforeParse(id, now())
	}
	result, err := c.parser.ParseAndInfer(ctx, text)
	if c.afterParse != nil {
		result, err = c.afterParse(id, now(), result, err)
	}
	if err != nil {
		if c.sink != nil {
			c.sink(uri, []Diagnostic{{Message: err.Error(), Severity: SeverityError}})
		}
		return
	}

	c.hover.put(uri, version, result.Hovers)

	if c.sink != nil {
		c.sink(uri, result.Diagnostics)
	}
}

// Hover resolves the smallest hover entry containing pos in uri's latest
// parsed version, or false if nothing is indexed yet.
func (c *Core) Hover(uri string, pos Position) (HoverEntry, bool) {
	var out HoverEntry
	var found bool
	_ = c.react.Do(func() {
		out, found = c.hover.lookup(uri, pos)
	})
	return out, found
}

// now is a seam around time.Now so tests can override it if needed.
func now() time.Time { return time.Now() }
