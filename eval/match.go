package eval

import (
	"github.com/shulhi/inferno/ast"
	"github.com/shulhi/inferno/env"
	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/value"
)

// match attempts to match pat against v, returning the lexical
// environment extended with any bindings the pattern introduces. Since
// elaboration guarantees patterns are linear, bindings from independent
// sub-patterns never collide and can simply be threaded through.
func match(pat ast.Pattern, v value.Value, L env.Lexical) (env.Lexical, bool) {
	switch p := pat.(type) {
	case ast.PWildcard:
		if p.Bind != nil {
			return L.Extend(ident.Named(*p.Bind), v), true
		}
		return L, true

	case ast.PLit:
		if value.Equal(p.Value, v) {
			return L, true
		}
		return L, false

	case ast.POne:
		one, ok := v.(value.VOne)
		if !ok {
			return L, false
		}
		return match(p.Inner, one.Inner, L)

	case ast.PEmpty:
		_, ok := v.(value.VEmpty)
		return L, ok

	case ast.PTuple:
		tup, ok := v.(value.VTuple)
		if !ok || len(tup.Items) != len(p.Elems) {
			return L, false
		}
		curL := L
		for i, sub := range p.Elems {
			var matched bool
			curL, matched = match(sub, tup.Items[i], curL)
			if !matched {
				return L, false
			}
		}
		return curL, true

	default:
		return L, false
	}
}
