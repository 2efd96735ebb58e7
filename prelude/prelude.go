// Package prelude defines the ModuleMap the host supplies to the
// evaluator and LSP core (spec.md §6), plus the small hook contracts
// (GetIdents, ValidateInput) a host implements to customize parsing and
// completion. The BeforeParse/AfterParse hooks live in package lspcore.
//
// A concrete Core module of arithmetic operators and an Array module of
// higher-order helpers is provided so this package is directly usable by
// the evaluator's tests and by cmd/infernoeval's demo, the same way
// chazu-maggie/pkg/codegen/primitives.go ships a table of registered
// primitives rather than leaving every caller to hand-build one.
package prelude

import (
	"github.com/shulhi/inferno/env"
	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// Binding pairs a prelude name's static Type with its runtime Value.
type Binding struct {
	Type  types.Type
	Value value.Value
}

// Module is a flat name -> Binding table, e.g. the "Array" module.
type Module map[string]Binding

// ModuleMap is keyed by module name, per spec.md §6.
type ModuleMap map[string]Module

// HashFor computes the deterministic pinned hash for a (module, name)
// pair. The evaluator never sees module/name strings directly — only the
// hash baked in by elaboration — but a host building an elaborated AST
// (or a test) needs a stable way to compute the same hash elaboration
// would have produced.
func HashFor(module, name string) ident.Hash {
	return ident.HashBytes([]byte("inferno.prelude." + module + "." + name))
}

// Pin installs every binding in mm into a Pinned environment, keyed by
// HashFor(module, name).
func Pin(mm ModuleMap) env.Pinned {
	p := env.NewPinned()
	for module, bindings := range mm {
		for name, b := range bindings {
			p = p.Extend(HashFor(module, name), b.Value)
		}
	}
	return p
}

// GetIdents supplies externally-defined identifier names to the parser
// wrapper and to completion (spec.md §6). Each entry may be absent
// (nil-equivalent) when a formal parameter slot exists but has no name
// yet bound.
type GetIdents func() []*string

// ValidateInput rejects disallowed input types for the current host
// context, e.g. a host that never wants to accept a raw VCustom as a
// script's top-level input type.
type ValidateInput func(t types.Type) error
