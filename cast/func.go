package cast

import (
	"fmt"

	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/value"
)

// ToFunc wraps a host function as a one-argument VFun closure, decoding
// its argument and encoding its result through r. Two type parameters
// can't be carried by a single Registry entry (Registry is keyed on one
// Go type), so function conversions are a standalone pair of generic
// helpers rather than Register/To/From entries — each callback shim is
// written by hand the way chazu-maggie/pkg/codegen/primitives.go writes
// one Go shim per builtin rather than deriving it from a single generic
// table.
func ToFunc[A, B any](r *Registry, fn func(A) (B, error)) value.Value {
	return value.VFun{
		Name: fmt.Sprintf("cast.ToFunc[%T]", *new(A)),
		Call: func(argv value.Value) (value.Value, error) {
			a, err := From[A](r, argv)
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

// FromFunc decodes a VFun into a host func(A) (B, error), rejecting any
// other Value shape.
func FromFunc[A, B any](r *Registry, v value.Value) (func(A) (B, error), error) {
	fn, ok := v.(value.VFun)
	if !ok {
		return nil, eval.CastError(fmt.Sprintf("expected a function, got %s", v.Pretty()))
	}
	return func(a A) (B, error) {
		var zero B
		argv, err := To(r, a)
		if err != nil {
			return zero, err
		}
		resv, err := fn.Call(argv)
		if err != nil {
			return zero, err
		}
		return From[B](r, resv)
	}, nil
}
