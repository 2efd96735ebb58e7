package cast

import (
	"fmt"

	"github.com/shulhi/inferno/env"
	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// ImplicitParam implements spec.md §4.2's "additional form": it binds a
// labelled implicit parameter to a host function rather than to an
// explicit argument. The returned VFun ignores the value it is called
// with and instead looks label up in I, decodes it as A via r, and
// delegates to fn. A missing label is NotFoundInImplicitEnv, matching
// the evaluator's own ?x lookup failure (eval/eval.go's evalVar); a
// decode failure is the usual CastError from From.
func ImplicitParam[A, B any](r *Registry, I env.Implicit, label string, fn func(A) (B, error)) value.Value {
	return value.VFun{
		Name: fmt.Sprintf("cast.ImplicitParam[?%s]", label),
		Call: func(value.Value) (value.Value, error) {
			v, ok := I.Lookup(label)
			if !ok {
				return nil, eval.NotFoundInImplicitEnv(label)
			}
			a, err := From[A](r, v)
			if err != nil {
				return nil, err
			}
			b, err := fn(a)
			if err != nil {
				return nil, err
			}
			return To(r, b)
		},
	}
}

// WidenNumeric coerces v toward target using the single implicit
// numeric conversion the language defines: VInt widens to VDouble
// (SPEC_FULL.md §9 decision 2, "Int widens to Double, never the
// reverse"). Any other mismatch between v's runtime shape and target is
// a CastError; no other implicit narrowing or widening exists. A host
// calls this at the boundary where a VCustom payload is about to be
// handed a value whose static type it already knows, e.g. before a
// ToFunc-wrapped callback runs.
func WidenNumeric(v value.Value, target types.Type) (value.Value, error) {
	switch target.(type) {
	case types.TDouble:
		switch x := v.(type) {
		case value.VDouble:
			return x, nil
		case value.VInt:
			return value.VDouble{D: float64(x.I)}, nil
		default:
			return nil, eval.CastError(fmt.Sprintf("cannot widen %s to double", v.Pretty()))
		}
	default:
		if !shapeMatches(v, target) {
			return nil, eval.CastError(fmt.Sprintf("%s does not have type %s", v.Pretty(), target.String()))
		}
		return v, nil
	}
}

// shapeMatches is a shallow runtime-shape check: it confirms v's variant
// is the one target's constructor would have produced, without
// recursing into element/field types the way a real type checker would
// (out of scope, spec.md §1).
func shapeMatches(v value.Value, target types.Type) bool {
	switch target.(type) {
	case types.TInt:
		_, ok := v.(value.VInt)
		return ok
	case types.TText:
		_, ok := v.(value.VText)
		return ok
	case types.TTime:
		_, ok := v.(value.VEpochTime)
		return ok
	case types.TWord16:
		_, ok := v.(value.VWord16)
		return ok
	case types.TWord32:
		_, ok := v.(value.VWord32)
		return ok
	case types.TWord64:
		_, ok := v.(value.VWord64)
		return ok
	case types.TEnum:
		_, ok := v.(value.VEnum)
		return ok
	case types.TArray:
		_, ok := v.(value.VArray)
		return ok
	case types.TOption:
		switch v.(type) {
		case value.VOne, value.VEmpty:
			return true
		default:
			return false
		}
	case types.TArrow:
		_, ok := v.(value.VFun)
		return ok
	case types.TTuple, types.TNil:
		_, ok := v.(value.VTuple)
		return ok
	default:
		return true
	}
}
