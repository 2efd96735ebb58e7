package ast

import "github.com/shulhi/inferno/value"

// Pattern is a Case arm's match pattern, as produced by elaboration.
// Patterns are required to be linear (no variable bound twice), so
// sub-binding merges during evaluation never collide (spec.md §4.1).
//
// This is the AST-level pattern shape; package exhaustive works over a
// separate, more abstract lattice (exhaustive.Pattern) better suited to
// usefulness analysis. Converting between the two is elaboration's job in
// a full pipeline; this module's exhaustive package takes its matrices
// directly so it has no dependency on ast.
type Pattern interface {
	isPattern()
}

// PWildcard matches anything. If Bind is non-nil, the matched value is
// bound to that identifier; otherwise the value is discarded.
type PWildcard struct{ Bind *string }

// PLit matches a literal or enum value by structural equality
// (value.Equal).
type PLit struct{ Value value.Value }

// POne matches VOne, recursing into Inner.
type POne struct{ Inner Pattern }

// PEmpty matches VEmpty.
type PEmpty struct{}

// PTuple matches VTuple positionally; len(Elems) must equal the tuple's
// arity.
type PTuple struct{ Elems []Pattern }

func (PWildcard) isPattern() {}
func (PLit) isPattern()      {}
func (POne) isPattern()      {}
func (PEmpty) isPattern()    {}
func (PTuple) isPattern()    {}
