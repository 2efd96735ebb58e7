// Package value implements V, the tagged runtime value produced by the
// evaluator (package eval) and consumed by the Cast bridge (package cast).
//
// Value is a sealed interface in the style of a typical Go sum type: one
// concrete struct per variant, each carrying a private marker method so
// that no package outside value can add a new variant by accident.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/types"
)

// Value is any of the Inferno runtime value variants.
type Value interface {
	isValue()
	// Pretty renders the canonical, observable pretty-print form (spec.md
	// §9): hex words get a "0x" prefix, epoch times a trailing "s", VFun
	// always prints "<<function>>", optionals print "Some v" / "None".
	Pretty() string
}

// VInt is a 64-bit signed integer.
type VInt struct{ I int64 }

// VDouble is a 64-bit float.
type VDouble struct{ D float64 }

// VWord16, VWord32, VWord64 are fixed-width unsigned words; hex literals
// evaluate to VWord64.
type (
	VWord16 struct{ W uint16 }
	VWord32 struct{ W uint32 }
	VWord64 struct{ W uint64 }
)

// VEpochTime is a point in time expressed as seconds since the Unix epoch.
type VEpochTime struct{ Seconds int64 }

// VText is a string.
type VText struct{ S string }

// VEnum is an enum constructor application. Owner identifies the enum
// type that defines Constructor, disambiguating identically named tags
// across enums (spec.md Glossary, "Enum hash").
type VEnum struct {
	Owner       ident.Hash
	Constructor string
}

// VArray is an ordered, homogeneous array of values.
type VArray struct{ Items []Value }

// VTuple is a fixed-arity heterogeneous tuple.
type VTuple struct{ Items []Value }

// VOne is the populated case of an optional value (`Some v`).
type VOne struct{ Inner Value }

// VEmpty is the empty case of an optional value (`None`).
type VEmpty struct{}

// VFun is a callable closure. Equality on VFun is always false (spec.md
// §9, Design Notes item 1) — this is enforced in Equal, not here, since
// Go interface equality on VFun would compare closure identity, which is
// not the semantics spec.md wants.
type VFun struct {
	// Name is metadata for pretty-printing/diagnostics only; it never
	// affects semantics.
	Name string
	Call func(Value) (Value, error)
}

// VTypeRep carries a runtime type descriptor, used to dispatch polymorphic
// numeric literals (spec.md §4.1) and as the argument to Cast's type
// descriptors.
type VTypeRep struct{ T types.Type }

// VCustom carries an opaque host payload. The evaluator never inspects
// Payload; only a host's Cast registrations (package cast) know its
// shape.
type VCustom struct {
	Tag     string
	Payload any
}

func (VInt) isValue()       {}
func (VDouble) isValue()    {}
func (VWord16) isValue()    {}
func (VWord32) isValue()    {}
func (VWord64) isValue()    {}
func (VEpochTime) isValue() {}
func (VText) isValue()      {}
func (VEnum) isValue()      {}
func (VArray) isValue()     {}
func (VTuple) isValue()     {}
func (VOne) isValue()       {}
func (VEmpty) isValue()     {}
func (VFun) isValue()       {}
func (VTypeRep) isValue()   {}
func (VCustom) isValue()    {}

// Pretty implementations. These are the single canonical rendering used by
// InterpolatedString, diagnostics, and REPL-style hosts; spec.md §9 calls
// this "fixed and observable".

func (v VInt) Pretty() string    { return strconv.FormatInt(v.I, 10) }
func (v VDouble) Pretty() string { return strconv.FormatFloat(v.D, 'g', -1, 64) }
func (v VWord16) Pretty() string { return "0x" + strconv.FormatUint(uint64(v.W), 16) }
func (v VWord32) Pretty() string { return "0x" + strconv.FormatUint(uint64(v.W), 16) }
func (v VWord64) Pretty() string { return "0x" + strconv.FormatUint(v.W, 16) }
func (v VEpochTime) Pretty() string { return strconv.FormatInt(v.Seconds, 10) + "s" }
func (v VText) Pretty() string   { return v.S }

func (v VEnum) Pretty() string { return v.Constructor }

func (v VArray) Pretty() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.Pretty()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v VTuple) Pretty() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.Pretty()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (v VOne) Pretty() string { return "Some " + v.Inner.Pretty() }
func (VEmpty) Pretty() string { return "None" }
func (VFun) Pretty() string   { return "<<function>>" }

func (v VTypeRep) Pretty() string { return v.T.String() }

func (v VCustom) Pretty() string { return fmt.Sprintf("<<%s>>", v.Tag) }

// BoolHash is the well-known owner hash of the built-in Bool enum
// (constructors "true"/"false"). The evaluator and Cast bridge both pin
// their boolean checks against this constant rather than a string
// comparison on the enum name, matching spec.md §3's invariant that enum
// disambiguation always goes through the owner hash.
var BoolHash = ident.HashBytes([]byte("inferno.prelude.Bool"))

// True and False are the two inhabitants of the built-in Bool enum.
var (
	True  = VEnum{Owner: BoolHash, Constructor: "true"}
	False = VEnum{Owner: BoolHash, Constructor: "false"}
)

// IsBoolTrue reports whether v is the canonical boolean true value.
func IsBoolTrue(v Value) bool {
	e, ok := v.(VEnum)
	return ok && e.Owner == BoolHash && e.Constructor == "true"
}

// IsBoolFalse reports whether v is the canonical boolean false value.
func IsBoolFalse(v Value) bool {
	e, ok := v.(VEnum)
	return ok && e.Owner == BoolHash && e.Constructor == "false"
}

// FromBool converts a Go bool to the canonical Bool enum value.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}
