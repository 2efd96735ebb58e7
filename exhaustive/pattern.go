// Package exhaustive implements Maranget's usefulness-matrix algorithm
// for pattern-match exhaustiveness and redundancy checking (spec.md
// §4.3). It operates on its own small Pattern term — a compiler's
// elaborated pattern, not package ast's runtime ast.Pattern — so this
// package stays independent of the evaluator's AST shape the same way a
// semantic analyzer in chazu-maggie/compiler/semantic.go works from its
// own intermediate representation rather than the raw parse tree.
package exhaustive

import "strconv"

// Pattern is one row-cell of a match matrix: a wildcard, or a
// constructor application over sub-patterns.
type Pattern struct {
	// Wildcard, when true, makes Con/Args irrelevant: this cell matches
	// anything.
	Wildcard bool
	Con      Constructor
	Args     []Pattern
}

// Constructor names one inhabitant of a (possibly enum) type, along with
// the arity it takes when applied. Literal patterns (ints, bools,
// strings) are represented as zero-arity constructors tagged with their
// literal's printed form, so the matrix algorithm never special-cases
// literals versus enum tags.
type Constructor struct {
	Name  string
	Arity int
	// Siblings lists every constructor of Con's owning type, in
	// declaration order, needed by IsCompleteSignature. An "infinite"
	// signature (int, text, double, array — any type with unboundedly
	// many literal inhabitants) carries a nil Siblings to signal that no
	// finite list of constructors can ever be complete.
	Siblings []Constructor
	// Succ synthesizes, from the constructors actually encountered in a
	// column, one guaranteed not among them — used only to build a
	// missing-arm witness for an infinite signature (Siblings == nil),
	// never as a real enumeration (spec.md §9). Literal constructors
	// built by IntLit/TextLit set this; a hand-built Constructor may
	// leave it nil, in which case successorConstructor falls back to
	// defaultSuccessor.
	Succ func(present []Constructor) Constructor
}

// Wild returns the wildcard pattern.
func Wild() Pattern { return Pattern{Wildcard: true} }

// Con builds a constructor pattern.
func Con(c Constructor, args ...Pattern) Pattern {
	return Pattern{Con: c, Args: args}
}

// rootConstructor reports p's head constructor and whether p has one
// (false for a wildcard).
func rootConstructor(p Pattern) (Constructor, bool) {
	if p.Wildcard {
		return Constructor{}, false
	}
	return p.Con, true
}

// IntLit builds the zero-arity constructor for an integer literal
// pattern. Its Succ picks one past the largest literal encountered,
// matching spec.md §9's "succ on numbers".
func IntLit(n int64) Constructor {
	return Constructor{Name: strconv.FormatInt(n, 10), Arity: 0, Succ: intSucc}
}

// TextLit builds the zero-arity constructor for a string literal
// pattern. Its Succ doubles the longest literal encountered, matching
// spec.md §9's "string doubling for text" — any value longer than
// every encountered literal is, trivially, not among them.
func TextLit(s string) Constructor {
	return Constructor{Name: s, Arity: 0, Succ: textSucc}
}

func intSucc(present []Constructor) Constructor {
	var max int64
	have := false
	for _, c := range present {
		if n, err := strconv.ParseInt(c.Name, 10, 64); err == nil {
			if !have || n > max {
				max, have = n, true
			}
		}
	}
	return IntLit(max + 1)
}

func textSucc(present []Constructor) Constructor {
	longest := ""
	for _, c := range present {
		if len(c.Name) > len(longest) {
			longest = c.Name
		}
	}
	return TextLit(longest + longest)
}
