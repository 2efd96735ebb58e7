// Package cast implements the host ↔ value.Value bridge (spec.md §4.2):
// dual ToValue/FromValue conversions plus a type descriptor, registered
// per host Go type the way chazu-maggie/pkg/codegen/primitives.go
// registers host primitives by name in a lookup table, generalized here
// to a type-keyed table using Go generics instead of string names.
package cast

import (
	"fmt"
	"reflect"

	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// caster is the registry's type-erased storage cell for one Go type A's
// conversion pair.
type caster interface {
	toValue(any) value.Value
	fromValue(value.Value) (any, error)
	typ() types.Type
}

type typedCaster[A any] struct {
	to   func(A) value.Value
	from func(value.Value) (A, error)
	t    types.Type
}

func (c typedCaster[A]) toValue(a any) value.Value {
	return c.to(a.(A))
}

func (c typedCaster[A]) fromValue(v value.Value) (any, error) {
	return c.from(v)
}

func (c typedCaster[A]) typ() types.Type { return c.t }

// Registry holds one Caster per covered Go type. A fresh Registry has no
// coverage; use NewRegistry to get one pre-populated with §4.2's
// "required coverage" set.
type Registry struct {
	casters map[reflect.Type]caster
}

// NewEmptyRegistry returns a Registry with no coverage at all — hosts
// that want to build up coverage themselves (e.g. for an embedded
// sublanguage with a restricted base type set) start here.
func NewEmptyRegistry() *Registry {
	return &Registry{casters: make(map[reflect.Type]caster)}
}

// Register installs A's conversion pair and type descriptor into r.
// Calling Register again for the same A replaces the previous entry.
func Register[A any](r *Registry, t types.Type, to func(A) value.Value, from func(value.Value) (A, error)) {
	var zero A
	key := reflect.TypeOf(&zero).Elem()
	r.casters[key] = typedCaster[A]{to: to, from: from, t: t}
}

func lookup[A any](r *Registry) (typedCaster[A], bool) {
	var zero A
	key := reflect.TypeOf(&zero).Elem()
	c, ok := r.casters[key]
	if !ok {
		return typedCaster[A]{}, false
	}
	tc, ok := c.(typedCaster[A])
	return tc, ok
}

// To converts a host value of type A into a value.Value using A's
// registered caster.
func To[A any](r *Registry, a A) (value.Value, error) {
	tc, ok := lookup[A](r)
	if !ok {
		return nil, eval.CastError(fmt.Sprintf("no Cast registered for %T", a))
	}
	return tc.to(a), nil
}

// From converts v into a host value of type A using A's registered
// caster. Failure (wrong Value shape, out-of-range numeric, etc.) is a
// CastError naming the source value and target type (spec.md §4.2).
func From[A any](r *Registry, v value.Value) (A, error) {
	var zero A
	tc, ok := lookup[A](r)
	if !ok {
		return zero, eval.CastError(fmt.Sprintf("no Cast registered for %T", zero))
	}
	a, err := tc.from(v)
	if err != nil {
		return zero, eval.CastError(fmt.Sprintf("cannot cast %s to %T: %v", v.Pretty(), zero, err))
	}
	return a, nil
}

// TypeOf returns A's registered InfernoType descriptor.
func TypeOf[A any](r *Registry) (types.Type, error) {
	tc, ok := lookup[A](r)
	if !ok {
		var zero A
		return nil, eval.CastError(fmt.Sprintf("no Cast registered for %T", zero))
	}
	return tc.t, nil
}
