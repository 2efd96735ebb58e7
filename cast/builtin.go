package cast

import (
	"time"

	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// NewRegistry returns a Registry pre-populated with casters for every
// base scalar type, bool, time.Time and unit (struct{} as the empty
// tuple). Options, slices and functions are not registry entries; they
// go through the standalone ToOption/ToSlice/ToFunc helpers. Hosts that
// add VCustom-backed types call Register directly on the result.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()

	Register[int64](r, types.TInt{},
		func(n int64) value.Value { return value.VInt{I: n} },
		func(v value.Value) (int64, error) {
			i, ok := v.(value.VInt)
			if !ok {
				return 0, eval.CastError("expected an int")
			}
			return i.I, nil
		})

	Register[float64](r, types.TDouble{},
		func(d float64) value.Value { return value.VDouble{D: d} },
		func(v value.Value) (float64, error) {
			switch x := v.(type) {
			case value.VDouble:
				return x.D, nil
			case value.VInt:
				return float64(x.I), nil
			default:
				return 0, eval.CastError("expected a double")
			}
		})

	Register[string](r, types.TText{},
		func(s string) value.Value { return value.VText{S: s} },
		func(v value.Value) (string, error) {
			t, ok := v.(value.VText)
			if !ok {
				return "", eval.CastError("expected text")
			}
			return t.S, nil
		})

	Register[bool](r, types.TEnum{Name: "Bool", Constructors: []string{"true", "false"}},
		func(b bool) value.Value { return value.FromBool(b) },
		func(v value.Value) (bool, error) {
			switch {
			case value.IsBoolTrue(v):
				return true, nil
			case value.IsBoolFalse(v):
				return false, nil
			default:
				return false, eval.CastError("expected a Bool")
			}
		})

	Register[time.Time](r, types.TTime{},
		func(t time.Time) value.Value { return value.VEpochTime{Seconds: t.Unix()} },
		func(v value.Value) (time.Time, error) {
			et, ok := v.(value.VEpochTime)
			if !ok {
				return time.Time{}, eval.CastError("expected a time")
			}
			return time.Unix(et.Seconds, 0).UTC(), nil
		})

	Register[uint16](r, types.TWord16{},
		func(w uint16) value.Value { return value.VWord16{W: w} },
		func(v value.Value) (uint16, error) {
			w, ok := v.(value.VWord16)
			if !ok {
				return 0, eval.CastError("expected a word16")
			}
			return w.W, nil
		})

	Register[uint32](r, types.TWord32{},
		func(w uint32) value.Value { return value.VWord32{W: w} },
		func(v value.Value) (uint32, error) {
			w, ok := v.(value.VWord32)
			if !ok {
				return 0, eval.CastError("expected a word32")
			}
			return w.W, nil
		})

	Register[uint64](r, types.TWord64{},
		func(w uint64) value.Value { return value.VWord64{W: w} },
		func(v value.Value) (uint64, error) {
			w, ok := v.(value.VWord64)
			if !ok {
				return 0, eval.CastError("expected a word64")
			}
			return w.W, nil
		})

	Register[struct{}](r, types.TupleOf(),
		func(struct{}) value.Value { return value.VTuple{} },
		func(v value.Value) (struct{}, error) {
			t, ok := v.(value.VTuple)
			if !ok || len(t.Items) != 0 {
				return struct{}{}, eval.CastError("expected unit")
			}
			return struct{}{}, nil
		})

	return r
}
