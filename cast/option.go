package cast

import (
	"fmt"

	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// ToOption and FromOption bridge Go's (A, bool)-present idiom to VOne/
// VEmpty. These live outside Registry because Option is parametric in A:
// a single Registry entry can't speak for every instantiation the way it
// can for a closed scalar type.
func ToOption[A any](r *Registry, present bool, a A) (value.Value, error) {
	if !present {
		return value.VEmpty{}, nil
	}
	inner, err := To(r, a)
	if err != nil {
		return nil, err
	}
	return value.VOne{Inner: inner}, nil
}

// FromOption reports whether v is VOne, and if so decodes its payload
// with A's registered caster.
func FromOption[A any](r *Registry, v value.Value) (a A, present bool, err error) {
	switch x := v.(type) {
	case value.VEmpty:
		return a, false, nil
	case value.VOne:
		a, err = From[A](r, x.Inner)
		return a, err == nil, err
	default:
		return a, false, eval.CastError(fmt.Sprintf("expected an optional value, got %s", v.Pretty()))
	}
}

// OptionType builds the TOption(elemType) descriptor for A.
func OptionType[A any](r *Registry) (types.Type, error) {
	elem, err := TypeOf[A](r)
	if err != nil {
		return nil, err
	}
	return types.TOption{Elem: elem}, nil
}
