package eval_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shulhi/inferno/ast"
	"github.com/shulhi/inferno/env"
	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/prelude"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// valueCmp delegates structural comparison to value.Equal instead of
// reflecting over Value's fields (which would panic on VFun's Call
// closure), the same cmp.Comparer-over-an-opaque-equality pattern
// cue-lang-cue's cue/literal/num_test.go uses for big.Rat/big.Int.
var valueCmp = cmp.Comparer(value.Equal)

// wantValue fails t with a go-cmp diff if got and want aren't
// structurally equal under the language's own equality rules.
func wantValue(t *testing.T, got, want value.Value) {
	t.Helper()
	if !cmp.Equal(got, want, valueCmp) {
		t.Error(cmp.Diff(want, got, valueCmp))
	}
}

func basePinned() env.Pinned {
	return prelude.Pin(prelude.Default)
}

func plusHash() ident.Hash  { return prelude.HashFor("Core", "+") }
func minusHash() ident.Hash { return prelude.HashFor("Core", "-") }
func maxHash() ident.Hash   { return prelude.HashFor("Core", "max") }

func litTyped(n int64, t types.Type) ast.Expr {
	return ast.App{Fn: ast.IntLit{N: n}, Arg: ast.TypeRepExpr{T: t}}
}

// Scenario 1: 3 + 4 with runtime type reps.
func TestScenario1IntAddition(t *testing.T) {
	P := basePinned()
	e := ast.BinOp{Hash: plusHash(), Lhs: litTyped(3, types.TInt{}), Rhs: litTyped(4, types.TInt{})}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VInt{I: 7})

	e2 := ast.BinOp{Hash: plusHash(), Lhs: litTyped(3, types.TDouble{}), Rhs: litTyped(4, types.TInt{})}
	got2, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got2, value.VDouble{D: 7.0})
}

// Scenario 2: implicit parameters.
func TestScenario2ImplicitParams(t *testing.T) {
	P := basePinned()
	e := ast.Let{
		Id:    ident.ImplicitParam("x"),
		Value: ast.DoubleLit{D: 3.2},
		Body: ast.BinOp{
			Hash: plusHash(),
			Lhs:  ast.Var{Id: ident.ImplicitParam("x")},
			Rhs:  litTyped(2, types.TDouble{}),
		},
	}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VDouble{D: 5.2})

	e2 := ast.BinOp{
		Hash: plusHash(),
		Lhs:  ast.Var{Id: ident.ImplicitParam("x")},
		Rhs:  litTyped(2, types.TInt{}),
	}
	I := env.NewImplicit().Extend("x", value.VInt{I: 5})
	got2, err := eval.Eval(context.Background(), env.NewLexical(), P, I, e2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got2, value.VInt{I: 7})
}

// Scenario 2b: unbound implicit parameter.
func TestImplicitParamNotFound(t *testing.T) {
	P := basePinned()
	e := ast.Var{Id: ident.ImplicitParam("missing")}
	_, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if !eval.IsKind(err, eval.KindNotFoundInImplicitEnv) {
		t.Fatalf("got %v, want NotFoundInImplicitEnv", err)
	}
}

// Scenario 3: case/match over doubles.
func TestScenario3Match(t *testing.T) {
	P := basePinned()
	e := ast.Case{
		Scrutinee: ast.BinOp{Hash: minusHash(), Lhs: ast.DoubleLit{D: 3.9}, Rhs: ast.DoubleLit{D: 2.2}},
		Arms: []ast.CaseArm{
			{Pattern: ast.PLit{Value: value.VDouble{D: 0.0}}, Body: ast.EnumLit{Hash: value.BoolHash, Tag: "false"}},
			{Pattern: ast.PWildcard{}, Body: ast.EnumLit{Hash: value.BoolHash, Tag: "true"}},
		},
	}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.IsBoolTrue(got) {
		t.Errorf("got %v, want true", got)
	}
}

// Scenario 4: assert failure.
func TestScenario4AssertFailed(t *testing.T) {
	P := basePinned()
	e := ast.Assert{
		Cond: ast.EnumLit{Hash: value.BoolHash, Tag: "false"},
		Body: ast.TupleLit{},
	}
	_, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if !eval.IsKind(err, eval.KindAssertionFailed) {
		t.Fatalf("got %v, want AssertionFailed", err)
	}
}

// Scenario 5: Array.reduce with max and numeric promotion.
func TestScenario5ArrayReduce(t *testing.T) {
	P := basePinned()

	buildArr := func(rep types.Type) ast.Expr {
		elems := make([]ast.Expr, 0, 7)
		for n := int64(-3); n <= 3; n++ {
			elems = append(elems, litTyped(n, rep))
		}
		return ast.ArrayLit{Elems: elems}
	}

	lam := ast.Lam{
		Params: []ast.Param{{Id: ident.Named("x")}, {Id: ident.Named("y")}},
		Body: ast.BinOp{
			Hash: plusHash(),
			Lhs:  ast.Var{Id: ident.Named("x")},
			Rhs: ast.BinOp{
				Hash: maxHash(),
				Lhs:  litTyped(0, types.TInt{}),
				Rhs:  ast.Var{Id: ident.Named("y")},
			},
		},
	}

	reduceExpr := func(zero ast.Expr) ast.Expr {
		return ast.App{
			Fn: ast.App{
				Fn:  ast.App{Fn: ast.PinnedRef{Hash: prelude.HashFor("Array", "reduce")}, Arg: lam},
				Arg: zero,
			},
			Arg: buildArr(types.TInt{}),
		}
	}

	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), reduceExpr(litTyped(0, types.TInt{})))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VInt{I: 6})

	got2, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), reduceExpr(litTyped(0, types.TDouble{})))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got2, value.VDouble{D: 6.0})
}

func TestLetAndLambdaClosure(t *testing.T) {
	P := basePinned()
	// let add1 = fun x -> x + 1 in add1 5
	e := ast.Let{
		Id: ident.Named("add1"),
		Value: ast.Lam{
			Params: []ast.Param{{Id: ident.Named("x")}},
			Body:   ast.BinOp{Hash: plusHash(), Lhs: ast.Var{Id: ident.Named("x")}, Rhs: litTyped(1, types.TInt{})},
		},
		Body: ast.App{Fn: ast.Var{Id: ident.Named("add1")}, Arg: litTyped(5, types.TInt{})},
	}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VInt{I: 6})
}

func TestWildcardLambdaParamIgnoresArgument(t *testing.T) {
	P := basePinned()
	// (fun _ y -> y) 99 7 == 7
	e := ast.App{
		Fn: ast.App{
			Fn: ast.Lam{
				Params: []ast.Param{{Wildcard: true}, {Id: ident.Named("y")}},
				Body:   ast.Var{Id: ident.Named("y")},
			},
			Arg: litTyped(99, types.TInt{}),
		},
		Arg: litTyped(7, types.TInt{}),
	}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VInt{I: 7})
}

func TestInterpolatedString(t *testing.T) {
	P := basePinned()
	e := ast.InterpString{Chunks: []ast.StringChunk{
		{Literal: "x = "},
		{Expr: litTyped(5, types.TInt{})},
	}}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VText{S: "x = 5"})
}

func TestArrayComprehensionSingleGenerator(t *testing.T) {
	P := basePinned()
	arr := ast.ArrayLit{Elems: []ast.Expr{litTyped(1, types.TInt{}), litTyped(2, types.TInt{}), litTyped(3, types.TInt{}), litTyped(4, types.TInt{})}}
	// [x | x <- arr] with no filter clause: the prelude pins no comparison
	// operator, so this checks plain flattening of one generator only.
	e := ast.ArrayComp{
		Body:       ast.Var{Id: ident.Named("x")},
		Generators: []ast.Generator{{Var: ident.Named("x"), Source: arr}},
	}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := value.VArray{Items: []value.Value{value.VInt{I: 1}, value.VInt{I: 2}, value.VInt{I: 3}, value.VInt{I: 4}}}
	wantValue(t, got, want)
}

func TestCaseNonExhaustiveIsRuntimeError(t *testing.T) {
	P := basePinned()
	e := ast.Case{
		Scrutinee: ast.EnumLit{Hash: value.BoolHash, Tag: "false"},
		Arms: []ast.CaseArm{
			{Pattern: ast.PLit{Value: value.True}, Body: ast.EmptyLit{}},
		},
	}
	_, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if !eval.IsKind(err, eval.KindRuntimeError) {
		t.Fatalf("got %v, want RuntimeError", err)
	}
}

func TestUnpinnedEnumIsRuntimeError(t *testing.T) {
	P := basePinned()
	e := ast.EnumLit{Tag: "x"} // zero Hash
	_, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if !eval.IsKind(err, eval.KindRuntimeError) {
		t.Fatalf("got %v, want RuntimeError", err)
	}
}

func TestTransparentWrappers(t *testing.T) {
	P := basePinned()
	e := ast.CommentAbove{Text: "doc", Inner: ast.Bracketed{Inner: litTyped(3, types.TInt{})}}
	got, err := eval.Eval(context.Background(), env.NewLexical(), P, env.NewImplicit(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValue(t, got, value.VInt{I: 3})
}
