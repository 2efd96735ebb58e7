// Package ast defines the elaborated, pinned expression tree consumed by
// the evaluator (package eval). This is a typed contract only: producing
// one of these trees is the job of the parser and inferencer, which are
// out of scope for this module (spec.md §1) and are represented here only
// by the external collaborator interfaces in package lspcore
// (ParseAndInfer) — everything downstream of "already elaborated and
// pinned" lives in this package and eval.
package ast

import (
	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/types"
)

// Expr is any elaborated expression node. It is a closed sum type: every
// concrete type below is the complete enumeration the evaluator switches
// over in spec.md §4.1.
type Expr interface {
	isExpr()
}

// IntLit is a polymorphic numeric literal; the evaluator resolves it
// against a runtime VTypeRep (spec.md §4.1).
type IntLit struct{ N int64 }

// DoubleLit is always a VDouble.
type DoubleLit struct{ D float64 }

// HexLit is always a VWord64.
type HexLit struct{ W uint64 }

// TextLit is always a VText.
type TextLit struct{ S string }

// StringChunk is one piece of an InterpolatedString: either literal text
// or a sub-expression to be rendered through value.Pretty.
type StringChunk struct {
	Literal string // valid iff Expr == nil
	Expr    Expr   // valid iff non-nil
}

// InterpString is a string built from literal and interpolated chunks.
type InterpString struct{ Chunks []StringChunk }

// ArrayLit is an array literal, evaluated left-to-right.
type ArrayLit struct{ Elems []Expr }

// Generator is one `x <- e_s` clause of an ArrayComp.
type Generator struct {
	Var    ident.ExtIdent
	Source Expr
}

// ArrayComp is an array comprehension: a body expression evaluated under
// the cross product of its generators, optionally filtered by Cond.
type ArrayComp struct {
	Body       Expr
	Generators []Generator
	Cond       Expr // nil if no filter clause
}

// EnumLit applies a pinned enum constructor. Hash is the owning enum's
// hash; the evaluator rejects a zero Hash (spec.md §4.1: "All enums must
// be pinned") but does not look it up in P.
type EnumLit struct {
	Hash ident.Hash
	Tag  string
}

// Var is an explicit or implicit identifier reference, resolved against L
// or I respectively depending on Id.Implicit.
type Var struct{ Id ident.ExtIdent }

// PinnedRef resolves a hash directly against P: prelude functions, enum
// constructors used as values, and operator symbols all elaborate to one
// of these (possibly wrapped in App for operator application).
type PinnedRef struct{ Hash ident.Hash }

// TypeRepExpr evaluates to a VTypeRep carrying T.
type TypeRepExpr struct{ T types.Type }

// BinOp is a binary operator application; Hash must resolve to a curried
// two-argument VFun in P (spec.md §4.1).
type BinOp struct {
	Hash ident.Hash
	Lhs  Expr
	Rhs  Expr
}

// UnOp is a unary operator application.
type UnOp struct {
	Hash    ident.Hash
	Operand Expr
}

// Param is one formal parameter of a Lam. A wildcard parameter consumes
// its argument without binding it.
type Param struct {
	Id       ident.ExtIdent
	Wildcard bool
}

// Lam is a (possibly multi-argument) lambda; the evaluator curries it
// into a chain of VFuns, one per Param.
type Lam struct {
	Params []Param
	Body   Expr
}

// App is function application: Fn must evaluate to a VFun.
type App struct {
	Fn  Expr
	Arg Expr
}

// Let binds Id to the value of Value for the scope of Body. If Id is
// implicit, the binding extends I instead of L.
type Let struct {
	Id    ident.ExtIdent
	Value Expr
	Body  Expr
}

// If is the conditional; Cond must evaluate to the Bool enum.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

// TupleLit constructs a VTuple.
type TupleLit struct{ Elems []Expr }

// OneLit constructs a VOne.
type OneLit struct{ Inner Expr }

// EmptyLit constructs a VEmpty (the empty optional).
type EmptyLit struct{}

// Assert evaluates Cond; if true, evaluates and returns Body, otherwise
// fails with AssertionFailed.
type Assert struct {
	Cond Expr
	Body Expr
}

// CaseArm pairs a pattern with the expression to evaluate when it
// matches.
type CaseArm struct {
	Pattern Pattern
	Body    Expr
}

// Case tries each arm's pattern against Scrutinee in source order; the
// first match wins.
type Case struct {
	Scrutinee Expr
	Arms      []CaseArm
}

// CommentAbove, CommentAfter, CommentBelow are transparent wrappers that
// carry source comment text alongside Inner without affecting evaluation.
type (
	CommentAbove struct {
		Text  string
		Inner Expr
	}
	CommentAfter struct {
		Text  string
		Inner Expr
	}
	CommentBelow struct {
		Text  string
		Inner Expr
	}
)

// Bracketed is a transparent `(e)` wrapper, kept in the tree for source
// round-tripping by tooling.
type Bracketed struct{ Inner Expr }

// RenameModule and OpenModule are transparent module-scoping wrappers;
// module resolution itself happens at elaboration time (out of scope), so
// by the time the evaluator sees them Inner is already fully resolved.
type (
	RenameModule struct {
		From, To string
		Inner    Expr
	}
	OpenModule struct {
		Module string
		Inner  Expr
	}
)

func (IntLit) isExpr()       {}
func (DoubleLit) isExpr()    {}
func (HexLit) isExpr()       {}
func (TextLit) isExpr()      {}
func (InterpString) isExpr() {}
func (ArrayLit) isExpr()     {}
func (ArrayComp) isExpr()    {}
func (EnumLit) isExpr()      {}
func (Var) isExpr()          {}
func (PinnedRef) isExpr()    {}
func (TypeRepExpr) isExpr()  {}
func (BinOp) isExpr()        {}
func (UnOp) isExpr()         {}
func (Lam) isExpr()          {}
func (App) isExpr()          {}
func (Let) isExpr()          {}
func (If) isExpr()           {}
func (TupleLit) isExpr()     {}
func (OneLit) isExpr()       {}
func (EmptyLit) isExpr()     {}
func (Assert) isExpr()       {}
func (Case) isExpr()         {}
func (CommentAbove) isExpr() {}
func (CommentAfter) isExpr() {}
func (CommentBelow) isExpr() {}
func (Bracketed) isExpr()    {}
func (RenameModule) isExpr() {}
func (OpenModule) isExpr()   {}
