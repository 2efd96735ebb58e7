// Command infernolsp runs the language-server core in lspcore over
// stdio, wired to github.com/tliron/glsp the same way
// chazu-maggie/server/lsp.go wires its LspServer: a protocol.Handler
// whose document lifecycle and language-feature callbacks forward into
// plain, glsp-independent logic (here, lspcore.Core) rather than
// touching glsp types themselves.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/shulhi/inferno/config"
	"github.com/shulhi/inferno/lspcore"
	"github.com/shulhi/inferno/prelude"
	"github.com/shulhi/inferno/telemetry"
)

const serverName = "inferno-lsp"

var serverVersion = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to inferno.toml (optional)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: infernolsp [-config path]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the Inferno language server on stdio.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "infernolsp: fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "infernolsp: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log := telemetry.NewLogger("infernolsp")
	tracer := telemetry.NewTracer("infernolsp")

	s := newServer(cfg, log, tracer)
	if err := s.run(); err != nil {
		fmt.Fprintf(os.Stderr, "infernolsp: %v\n", err)
		os.Exit(1)
	}
}

// server bridges LSP editor features to lspcore.Core, mirroring
// chazu-maggie/server/lsp.go's LspServer: a thin protocol.Handler plus a
// document cache used only to translate an LSP position into the prefix
// or word a language-feature request needs before handing off to the
// core.
type server struct {
	core *lspcore.Core
	log  *telemetry.Logger
	tr   *telemetry.Tracer

	mu     sync.Mutex
	docs   map[string]string
	notify glsp.NotifyFunc

	handler protocol.Handler
	glsp    *glspserver.Server
}

func newServer(cfg *config.Config, log *telemetry.Logger, tr *telemetry.Tracer) *server {
	s := &server{log: log, tr: tr, docs: make(map[string]string)}

	opts := []lspcore.Option{
		lspcore.WithReservedWords(reservedWords),
		lspcore.WithModuleNames(bareModuleNames(prelude.Default)),
		lspcore.WithPreludeCompletions(qualifiedPreludeNames(prelude.Default)),
		lspcore.WithHooks(s.beforeParse, s.afterParse),
		lspcore.WithDiagnosticsSink(s.publishDiagnostics),
	}
	if cfg.LSP.MaxHoverVersionsPerDoc > 0 {
		opts = append(opts, lspcore.WithMaxHoverVersionsPerDoc(cfg.LSP.MaxHoverVersionsPerDoc))
	}
	s.core = lspcore.New(passthroughParser{}, opts...)

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}
	s.glsp = glspserver.NewServer(&s.handler, serverName, false)

	return s
}

// run starts the server on stdio. Blocks until the client disconnects.
func (s *server) run() error {
	return s.glsp.RunStdio()
}

// --- lifecycle ---

func (s *server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.log.Info("initializing")
	s.mu.Lock()
	s.notify = ctx.Notify
	s.mu.Unlock()

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{TriggerCharacters: []string{".", "$"}}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &serverVersion,
		},
	}, nil
}

func (s *server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error { return nil }

func (s *server) shutdown(ctx *glsp.Context) error {
	s.core.Stop()
	return nil
}

func (s *server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error { return nil }

// --- document synchronization ---

func (s *server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.setDoc(uri, params.TextDocument.Text)
	s.core.DidOpen(context.Background(), uri, params.TextDocument.Text, int(params.TextDocument.Version))
	return nil
}

func (s *server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	last := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	uri := string(params.TextDocument.URI)
	s.setDoc(uri, whole.Text)
	s.core.DidChange(context.Background(), uri, whole.Text, int(params.TextDocument.Version))
	return nil
}

func (s *server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	s.core.DidClose(uri)
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *server) setDoc(uri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

// --- language features ---

func (s *server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	s.mu.Lock()
	text := s.docs[uri]
	s.mu.Unlock()

	prefix := extractPrefix(text, params.Position)
	items := s.core.Completion(uri, prefix)
	return toProtocolItems(items), nil
}

func (s *server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	pos := lspcore.Position{Line: int(params.Position.Line), Character: int(params.Position.Character)}
	entry, ok := s.core.Hover(string(params.TextDocument.URI), pos)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: entry.Text},
	}, nil
}

// extractPrefix returns the identifier fragment immediately before the
// cursor, the same backward scan chazu-maggie/server/lsp.go's own
// extractPrefix uses before asking for completions.
func extractPrefix(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := int(pos.Character)
	if col > len(line) {
		col = len(line)
	}
	start := col
	for start > 0 {
		ch := rune(line[start-1])
		if ch == '_' || ch == '.' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' {
			start--
		} else {
			break
		}
	}
	return line[start:col]
}

// --- diagnostics ---

func (s *server) publishDiagnostics(uri string, diagnostics []lspcore.Diagnostic) {
	out := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		sev := toProtocolSeverity(d.Severity)
		source := serverName
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(d.Range.Start.Line), Character: protocol.UInteger(d.Range.Start.Character)},
				End:   protocol.Position{Line: protocol.UInteger(d.Range.End.Line), Character: protocol.UInteger(d.Range.End.Character)},
			},
			Severity: &sev,
			Source:   &source,
			Message:  d.Message,
		})
	}
	s.tr.Record("diagnostics", fmt.Sprintf("%s: %d issues", uri, len(out)))

	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentUri(uri),
			Diagnostics: out,
		})
	}
}

func (s *server) beforeParse(id uuid.UUID, at time.Time) {
	s.tr.Record("parse", "started")
}

// afterParse only records metrics here; it returns result/err unchanged
// since this server has no diagnostics-rewriting policy of its own, but
// it is wired with the full (Result, error) → (Result, error) shape
// lspcore.AfterParseHook carries so a future policy (e.g. demoting a
// diagnostic severity, adding a slow-parse warning) can be added here
// without touching lspcore itself.
func (s *server) afterParse(id uuid.UUID, at time.Time, result lspcore.Result, err error) (lspcore.Result, error) {
	if err != nil {
		s.tr.Record("parse", "failed: "+err.Error())
		return result, err
	}
	s.tr.Record("parse", "finished")
	return result, err
}

func toProtocolSeverity(sev lspcore.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case lspcore.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case lspcore.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	case lspcore.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func toProtocolItems(items []lspcore.CompletionItem) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		kind := protocol.CompletionItemKindText
		label := it.Label
		detail := it.Detail
		out = append(out, protocol.CompletionItem{
			Label:      label,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &label,
		})
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

var reservedWords = []string{
	"let", "in", "if", "then", "else", "fun", "case", "of", "assert", "module", "rename", "open",
}

// bareModuleNames lists the prelude's module names on their own (e.g.
// "Core", "Array") — spec.md §4.5's module-name completion source.
func bareModuleNames(mm prelude.ModuleMap) []string {
	out := make([]string, 0, len(mm))
	for modName := range mm {
		out = append(out, modName)
	}
	return out
}

// qualifiedPreludeNames lists every "Module.binding" pair the prelude
// exposes — spec.md §4.5's prelude-derived completion source, and §8
// scenario 8's exact "Array.range"/"Array.map" example.
func qualifiedPreludeNames(mm prelude.ModuleMap) []string {
	var out []string
	for modName, mod := range mm {
		for bindingName := range mod {
			out = append(out, modName+"."+bindingName)
		}
	}
	return out
}

// passthroughParser is a minimal stand-in for the parser/type-checker
// this module does not implement: it treats the whole document as one
// hoverable span and surfaces unbalanced bracket/paren/brace nesting as
// the only diagnostic it knows how to produce. A host with a real
// front end supplies its own lspcore.ParseAndInfer instead.
type passthroughParser struct{}

func (passthroughParser) ParseAndInfer(ctx context.Context, source string) (lspcore.Result, error) {
	lines := strings.Split(source, "\n")
	endLine := len(lines) - 1
	endChar := len(lines[endLine])

	whole := lspcore.Range{
		Start: lspcore.Position{Line: 0, Character: 0},
		End:   lspcore.Position{Line: endLine, Character: endChar},
	}

	if msg, line, col := firstUnbalancedDelimiter(lines); msg != "" {
		return lspcore.Result{
			Diagnostics: []lspcore.Diagnostic{{
				Range:    lspcore.Range{Start: lspcore.Position{Line: line, Character: col}, End: lspcore.Position{Line: line, Character: col + 1}},
				Severity: lspcore.SeverityError,
				Message:  msg,
			}},
		}, nil
	}

	return lspcore.Result{
		Hovers: []lspcore.HoverEntry{{Range: whole, Text: "Inferno source"}},
	}, nil
}

func firstUnbalancedDelimiter(lines []string) (string, int, int) {
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	var stack []rune
	for lineNo, line := range lines {
		for col, ch := range line {
			switch ch {
			case '(', '[', '{':
				stack = append(stack, ch)
			case ')', ']', '}':
				if len(stack) == 0 || stack[len(stack)-1] != pairs[ch] {
					return fmt.Sprintf("unmatched %q", ch), lineNo, col
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("unclosed %q", stack[len(stack)-1]), len(lines) - 1, 0
	}
	return "", 0, 0
}
