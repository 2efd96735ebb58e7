package prelude

import (
	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// numeric widens a VInt operand to VDouble whenever its sibling is a
// VDouble (SPEC_FULL.md §9 decision 2: "Int widens to Double, never the
// reverse"), then calls intOp or doubleOp as appropriate. Any other
// combination of operand kinds is a CastError.
func numeric(a, b value.Value, intOp func(x, y int64) int64, doubleOp func(x, y float64) float64) (value.Value, error) {
	ai, aIsInt := a.(value.VInt)
	bi, bIsInt := b.(value.VInt)
	ad, aIsDouble := a.(value.VDouble)
	bd, bIsDouble := b.(value.VDouble)

	switch {
	case aIsInt && bIsInt:
		return value.VInt{I: intOp(ai.I, bi.I)}, nil
	case aIsDouble && bIsDouble:
		return value.VDouble{D: doubleOp(ad.D, bd.D)}, nil
	case aIsInt && bIsDouble:
		return value.VDouble{D: doubleOp(float64(ai.I), bd.D)}, nil
	case aIsDouble && bIsInt:
		return value.VDouble{D: doubleOp(ad.D, float64(bi.I))}, nil
	default:
		return nil, eval.CastError("expected two numeric operands")
	}
}

func binFn(name string, intOp func(x, y int64) int64, doubleOp func(x, y float64) float64) value.Value {
	return value.VFun{
		Name: name,
		Call: func(a value.Value) (value.Value, error) {
			return value.VFun{
				Name: name,
				Call: func(b value.Value) (value.Value, error) {
					return numeric(a, b, intOp, doubleOp)
				},
			}, nil
		},
	}
}

// Core is the arithmetic/comparison operator module. Names match the
// bare operator symbols the evaluator's BinOp/UnOp nodes are pinned to.
var Core = Module{
	"+": Binding{Type: types.TArrow{}, Value: binFn("+",
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })},
	"-": Binding{Type: types.TArrow{}, Value: binFn("-",
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })},
	"*": Binding{Type: types.TArrow{}, Value: binFn("*",
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })},
	"max": Binding{Type: types.TArrow{}, Value: binFn("max",
		func(x, y int64) int64 {
			if x > y {
				return x
			}
			return y
		},
		func(x, y float64) float64 {
			if x > y {
				return x
			}
			return y
		})},
}

// reduceFn implements Array.reduce (fn : a -> b -> a) (zero : a) (xs :
// [b]) -> a: a strict left fold, matching spec.md scenario 5.
var reduceFn = value.VFun{
	Name: "Array.reduce",
	Call: func(fnv value.Value) (value.Value, error) {
		fn, ok := fnv.(value.VFun)
		if !ok {
			return nil, eval.RuntimeError("Array.reduce: first argument must be a function")
		}
		return value.VFun{
			Name: "Array.reduce(fn)",
			Call: func(zero value.Value) (value.Value, error) {
				return value.VFun{
					Name: "Array.reduce(fn,zero)",
					Call: func(arrv value.Value) (value.Value, error) {
						arr, ok := arrv.(value.VArray)
						if !ok {
							return nil, eval.RuntimeError("Array.reduce: third argument must be an array")
						}
						acc := zero
						for _, item := range arr.Items {
							partial, err := fn.Call(acc)
							if err != nil {
								return nil, err
							}
							partialFn, ok := partial.(value.VFun)
							if !ok {
								return nil, eval.RuntimeError("Array.reduce: fn did not curry to a second argument")
							}
							acc, err = partialFn.Call(item)
							if err != nil {
								return nil, err
							}
						}
						return acc, nil
					},
				}, nil
			},
		}, nil
	},
}

// mapFn implements Array.map (fn : a -> b) (xs : [a]) -> [b].
var mapFn = value.VFun{
	Name: "Array.map",
	Call: func(fnv value.Value) (value.Value, error) {
		fn, ok := fnv.(value.VFun)
		if !ok {
			return nil, eval.RuntimeError("Array.map: first argument must be a function")
		}
		return value.VFun{
			Name: "Array.map(fn)",
			Call: func(arrv value.Value) (value.Value, error) {
				arr, ok := arrv.(value.VArray)
				if !ok {
					return nil, eval.RuntimeError("Array.map: second argument must be an array")
				}
				out := make([]value.Value, len(arr.Items))
				for i, item := range arr.Items {
					v, err := fn.Call(item)
					if err != nil {
						return nil, err
					}
					out[i] = v
				}
				return value.VArray{Items: out}, nil
			},
		}, nil
	},
}

// rangeFn implements Array.range (lo : int) (hi : int) -> [int], the
// inclusive integer range the "(-3)..3" syntax in spec.md scenario 5
// sugars to.
var rangeFn = value.VFun{
	Name: "Array.range",
	Call: func(lov value.Value) (value.Value, error) {
		lo, ok := lov.(value.VInt)
		if !ok {
			return nil, eval.RuntimeError("Array.range: first argument must be an int")
		}
		return value.VFun{
			Name: "Array.range(lo)",
			Call: func(hiv value.Value) (value.Value, error) {
				hi, ok := hiv.(value.VInt)
				if !ok {
					return nil, eval.RuntimeError("Array.range: second argument must be an int")
				}
				var out []value.Value
				for n := lo.I; n <= hi.I; n++ {
					out = append(out, value.VInt{I: n})
				}
				return value.VArray{Items: out}, nil
			},
		}, nil
	},
}

// Array is the Array module: reduce, map, range.
var Array = Module{
	"reduce": Binding{Type: types.TArrow{}, Value: reduceFn},
	"map":    Binding{Type: types.TArrow{}, Value: mapFn},
	"range":  Binding{Type: types.TArrow{}, Value: rangeFn},
}

// Default is the ModuleMap a host that wants the baseline arithmetic and
// array operators can pass straight to Pin.
var Default = ModuleMap{
	"Core":  Core,
	"Array": Array,
}
