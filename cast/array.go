package cast

import (
	"fmt"

	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// ToSlice and FromSlice bridge []A to VArray, element-by-element, using
// A's registered caster. Parametric in A for the same reason Option is
// (cast/option.go).
func ToSlice[A any](r *Registry, xs []A) (value.Value, error) {
	items := make([]value.Value, len(xs))
	for i, x := range xs {
		v, err := To(r, x)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.VArray{Items: items}, nil
}

// FromSlice decodes a VArray into []A.
func FromSlice[A any](r *Registry, v value.Value) ([]A, error) {
	arr, ok := v.(value.VArray)
	if !ok {
		return nil, eval.CastError(fmt.Sprintf("expected an array, got %s", v.Pretty()))
	}
	out := make([]A, len(arr.Items))
	for i, item := range arr.Items {
		a, err := From[A](r, item)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// ArrayType builds the TArray(elemType) descriptor for A.
func ArrayType[A any](r *Registry) (types.Type, error) {
	elem, err := TypeOf[A](r)
	if err != nil {
		return nil, err
	}
	return types.TArray{Elem: elem}, nil
}
