package vcobject_test

import (
	"testing"

	"github.com/shulhi/inferno/ast"
	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/vcobject"
)

func TestHashIsDeterministic(t *testing.T) {
	f := vcobject.VCFunction{Name: "double", Params: []string{"x"}, Body: ast.IntLit{N: 2}}
	h1 := vcobject.Hash(f)
	h2 := vcobject.Hash(f)
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %s != %s", h1, h2)
	}
}

func TestHashDistinguishesContent(t *testing.T) {
	a := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 1}}
	b := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 2}}
	if vcobject.Hash(a) == vcobject.Hash(b) {
		t.Error("expected distinct hashes for distinct bodies")
	}
}

func TestGetDependenciesCollectsBinOpHash(t *testing.T) {
	plus := ident.HashBytes([]byte("inferno.prelude.Core.+"))
	body := ast.BinOp{Hash: plus, Lhs: ast.Var{Id: ident.Named("x")}, Rhs: ast.IntLit{N: 1}}
	f := vcobject.VCFunction{Name: "inc", Params: []string{"x"}, Body: body}
	deps := vcobject.GetDependencies(f)
	if len(deps) != 1 || deps[0] != plus {
		t.Errorf("got %v, want [%s]", deps, plus)
	}
}

func TestStorePutGetRoundTrip(t *testing.T) {
	s := vcobject.NewStore()
	f := vcobject.VCFunction{Name: "id", Params: []string{"x"}, Body: ast.Var{Id: ident.Named("x")}}
	h := s.Put(f, vcobject.PinnedLocal)

	got, ok := s.Get(h)
	if !ok {
		t.Fatal("expected Get to find the stored function")
	}
	if got.(vcobject.VCFunction).Name != "id" {
		t.Errorf("got %v", got)
	}
}

func TestRemoveTombstonesButKeepsHashKnown(t *testing.T) {
	s := vcobject.NewStore()
	e := vcobject.VCEnum{Name: "Color", Constructors: []string{"Red", "Green"}}
	h := s.Put(e, vcobject.PinnedLocal)

	s.Remove(h)
	if _, ok := s.Get(h); ok {
		t.Error("expected Get to miss a removed hash")
	}
	if !s.Has(h) {
		t.Error("expected Has to still report the hash as known")
	}
	if !s.Removed(h) {
		t.Error("expected Removed to report true")
	}
}

func TestInitHasNoPredecessor(t *testing.T) {
	f := vcobject.VCFunction{Name: "f", Params: nil, Body: ast.IntLit{N: 0}}
	if !vcobject.Init(f) {
		t.Error("expected Init(f) for a freshly authored function")
	}
}

func TestCompatibleWithPredSameShape(t *testing.T) {
	s := vcobject.NewStore()
	v1 := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 1}}
	h1 := s.Put(v1, vcobject.PinnedVersioned)

	v2 := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 2}, Cloned: h1}
	if !vcobject.CompatibleWithPred(s, v2) {
		t.Error("expected a same-arity body edit to be compatible")
	}
	if vcobject.IncompatibleWithPred(s, v2) {
		t.Error("did not expect IncompatibleWithPred to also hold")
	}
}

func TestIncompatibleWithPredArityChange(t *testing.T) {
	s := vcobject.NewStore()
	v1 := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 1}}
	h1 := s.Put(v1, vcobject.PinnedVersioned)

	v2 := vcobject.VCFunction{Name: "f", Params: []string{"x", "y"}, Body: ast.IntLit{N: 1}, Cloned: h1}
	if !vcobject.IncompatibleWithPred(s, v2) {
		t.Error("expected an arity change to be incompatible")
	}
}

func TestMarkedBreakingOverridesShapeMatch(t *testing.T) {
	s := vcobject.NewStore()
	v1 := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 1}}
	h1 := s.Put(v1, vcobject.PinnedVersioned)

	v2 := vcobject.VCFunction{Name: "f", Params: []string{"x"}, Body: ast.IntLit{N: 9}, Cloned: h1, Breaking: true}
	if !vcobject.MarkedBreakingWithPred(s, v2) {
		t.Error("expected MarkedBreakingWithPred to hold")
	}
	if vcobject.CompatibleWithPred(s, v2) {
		t.Error("expected a breaking-marked edit to not be reported compatible")
	}
}

func TestCloneOfNotFoundAndRemoved(t *testing.T) {
	s := vcobject.NewStore()
	var dangling ident.Hash
	for i := range dangling {
		dangling[i] = 0xFF
	}
	v := vcobject.VCFunction{Name: "g", Cloned: dangling}
	if !vcobject.CloneOfNotFound(s, v) {
		t.Error("expected CloneOfNotFound for a hash the store never indexed")
	}

	base := vcobject.VCFunction{Name: "h"}
	h := s.Put(base, vcobject.PinnedLocal)
	s.Remove(h)
	v2 := vcobject.VCFunction{Name: "h2", Cloned: h}
	if !vcobject.CloneOfRemoved(s, v2) {
		t.Error("expected CloneOfRemoved for a tombstoned predecessor")
	}
}
