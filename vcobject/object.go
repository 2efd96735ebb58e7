// Package vcobject implements the content-addressed object graph spec.md
// §4.4 describes: functions, test functions, modules, and enums are each
// hashed from their structural content, and a Store indexes them by that
// hash the way chazu-maggie/vm/content_store.go indexes compiled
// methods and class digests by a SHA-256 over their structural fields.
package vcobject

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/shulhi/inferno/ast"
	"github.com/shulhi/inferno/ident"
)

// VCObject is any of the four hashable unit kinds spec.md §4.4 names.
type VCObject interface {
	isVCObject()
	// ClonedFrom names the predecessor hash this object was edited from,
	// or ident.Hash{} if it has none (a freshly authored unit).
	ClonedFrom() ident.Hash
}

// VCFunction is a single top-level function: its parameter list and
// elaborated body.
type VCFunction struct {
	Name     string
	Params   []string
	Body     ast.Expr
	Cloned   ident.Hash
	Breaking bool
}

// VCTestFunction is a function whose body is asserted against a fixed
// set of sample inputs, the unit spec.md's examples call a "test
// function" (`@test` style declarations over a VCFunction's name).
type VCTestFunction struct {
	Name     string
	Target   ident.Hash // the VCFunction hash under test
	Body     ast.Expr
	Cloned   ident.Hash
	Breaking bool
}

// VCModule groups named members (functions, enums, nested modules) under
// one namespace. Members is name -> member hash, not member value — a
// module only ever points at content by hash, the same indirection
// GetDependencies relies on to walk the graph.
type VCModule struct {
	Name     string
	Members  map[string]ident.Hash
	Cloned   ident.Hash
	Breaking bool
}

// VCEnum is an enum type's constructor tag set.
type VCEnum struct {
	Name         string
	Constructors []string
	Cloned       ident.Hash
	Breaking     bool
}

func (VCFunction) isVCObject()     {}
func (VCTestFunction) isVCObject() {}
func (VCModule) isVCObject()       {}
func (VCEnum) isVCObject()         {}

func (f VCFunction) ClonedFrom() ident.Hash     { return f.Cloned }
func (f VCTestFunction) ClonedFrom() ident.Hash { return f.Cloned }
func (m VCModule) ClonedFrom() ident.Hash       { return m.Cloned }
func (e VCEnum) ClonedFrom() ident.Hash         { return e.Cloned }

// canonicalForm is the tagged, CBOR-stable shape hashed for each
// VCObject variant. Using a dedicated struct (rather than hashing the
// variant directly) keeps the wire tag explicit and independent of
// whichever field order Go happens to lay the real struct out in.
type canonicalForm struct {
	Tag          string
	Name         string
	Params       []string   `cbor:",omitempty"`
	BodyHash     ident.Hash `cbor:",omitempty"`
	Target       ident.Hash `cbor:",omitempty"`
	Members      map[string]ident.Hash `cbor:",omitempty"`
	Constructors []string   `cbor:",omitempty"`
}

// exprHash hashes an elaborated expression by the CBOR encoding of its
// concrete node. Expr has no canonical byte encoding of its own (ast/ has no
// serializer — out of scope per spec.md §1's "no lexer/parser"), so this
// settles for cbor's reflection-based encoding of the concrete node,
// which is deterministic for a fixed Go type as long as map fields are
// avoided — ast.Expr nodes are all slices/scalars/sub-Exprs, never maps.
func exprHash(e ast.Expr) ident.Hash {
	b, err := cbor.Marshal(e)
	if err != nil {
		// Marshal failure here means a node carries an unencodable field
		// (a func value, e.g. inside a already-evaluated closure leaking
		// into an AST position, which elaboration never produces); treat
		// it as an empty body rather than panicking.
		return ident.Hash{}
	}
	return ident.HashBytes(b)
}

// Hash computes obj's content address: canonical CBOR encoding of its
// canonicalForm, then SHA-256, matching
// chazu-maggie/vm/content_store.go's encode-then-sha256 shape
// (HashClass) but via a real canonical encoder instead of a
// hand-written byte writer.
func Hash(obj VCObject) ident.Hash {
	cf := toCanonical(obj)
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return ident.Hash{}
	}
	b, err := em.Marshal(cf)
	if err != nil {
		return ident.Hash{}
	}
	return ident.HashBytes(b)
}

func toCanonical(obj VCObject) canonicalForm {
	switch o := obj.(type) {
	case VCFunction:
		return canonicalForm{Tag: "function", Name: o.Name, Params: o.Params, BodyHash: exprHash(o.Body)}
	case VCTestFunction:
		return canonicalForm{Tag: "testfunction", Name: o.Name, Target: o.Target, BodyHash: exprHash(o.Body)}
	case VCModule:
		return canonicalForm{Tag: "module", Name: o.Name, Members: o.Members}
	case VCEnum:
		return canonicalForm{Tag: "enum", Name: o.Name, Constructors: o.Constructors}
	default:
		return canonicalForm{Tag: "unknown"}
	}
}

// GetDependencies returns every hash obj directly references: the
// PinnedRef, EnumLit, BinOp and UnOp hashes inside a VCFunction's body, a VCTestFunction's
// Target plus its body's references, and a VCModule's member hashes. A
// VCEnum has none.
func GetDependencies(obj VCObject) []ident.Hash {
	switch o := obj.(type) {
	case VCFunction:
		return collectPinnedRefs(o.Body)
	case VCTestFunction:
		deps := collectPinnedRefs(o.Body)
		return append(deps, o.Target)
	case VCModule:
		deps := make([]ident.Hash, 0, len(o.Members))
		for _, h := range o.Members {
			deps = append(deps, h)
		}
		return deps
	case VCEnum:
		return nil
	default:
		return nil
	}
}

// collectPinnedRefs walks e looking for ast.PinnedRef, ast.EnumLit,
// ast.BinOp and ast.UnOp nodes, the node kinds that name another object
// by hash. Case patterns are not searched.
func collectPinnedRefs(e ast.Expr) []ident.Hash {
	var out []ident.Hash
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case ast.PinnedRef:
			out = append(out, n.Hash)
		case ast.EnumLit:
			out = append(out, n.Hash)
		case ast.BinOp:
			out = append(out, n.Hash)
			walk(n.Lhs)
			walk(n.Rhs)
		case ast.UnOp:
			out = append(out, n.Hash)
			walk(n.Operand)
		case ast.App:
			walk(n.Fn)
			walk(n.Arg)
		case ast.Lam:
			walk(n.Body)
		case ast.Let:
			walk(n.Value)
			walk(n.Body)
		case ast.If:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		case ast.Assert:
			walk(n.Cond)
			walk(n.Body)
		case ast.Case:
			walk(n.Scrutinee)
			for _, arm := range n.Arms {
				walk(arm.Body)
			}
		case ast.ArrayLit:
			for _, el := range n.Elems {
				walk(el)
			}
		case ast.ArrayComp:
			walk(n.Body)
			for _, g := range n.Generators {
				walk(g.Source)
			}
		case ast.TupleLit:
			for _, el := range n.Elems {
				walk(el)
			}
		case ast.InterpString:
			for _, c := range n.Chunks {
				if c.Expr != nil {
					walk(c.Expr)
				}
			}
		case ast.CommentAbove:
			walk(n.Inner)
		case ast.CommentAfter:
			walk(n.Inner)
		case ast.CommentBelow:
			walk(n.Inner)
		case ast.Bracketed:
			walk(n.Inner)
		case ast.RenameModule:
			walk(n.Inner)
		case ast.OpenModule:
			walk(n.Inner)
		}
	}
	walk(e)
	return out
}
