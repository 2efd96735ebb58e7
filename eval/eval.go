// Package eval implements THE CORE tree-walking interpreter (spec.md
// §4.1): Eval takes a fully pinned, elaborated ast.Expr under the three
// environments from package env and produces a value.Value or one of the
// four EvalError kinds.
//
// Eval is a pure function of its environments and expression (spec.md §8, "Evaluator
// determinism"): it holds no package-level state, starts no goroutines,
// and every case below either returns a value or propagates an error —
// there is no retry, no recovery, and no hidden fallthrough (spec.md §7).
package eval

import (
	"context"

	"github.com/shulhi/inferno/ast"
	"github.com/shulhi/inferno/env"
	"github.com/shulhi/inferno/types"
	"github.com/shulhi/inferno/value"
)

// Eval evaluates e under L (lexical), P (pinned), and I (implicit).
//
// ctx supports cooperative cancellation only (spec.md §5: "the evaluator
// is synchronous and has no internal concurrency") — it is checked at
// recursion points that can do unbounded work (array literals,
// comprehensions, case arms) so a host-imposed timeout can interrupt a
// runaway script between sub-evaluations; Eval never itself spawns a
// goroutine or selects on ctx.Done() mid-expression.
func Eval(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, e ast.Expr) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, RuntimeError(err.Error())
	}

	switch n := e.(type) {

	case ast.IntLit:
		return intLitFun(n.N), nil

	case ast.DoubleLit:
		return value.VDouble{D: n.D}, nil

	case ast.HexLit:
		return value.VWord64{W: n.W}, nil

	case ast.TextLit:
		return value.VText{S: n.S}, nil

	case ast.InterpString:
		return evalInterpString(ctx, L, P, I, n)

	case ast.ArrayLit:
		items := make([]value.Value, 0, len(n.Elems))
		for _, sub := range n.Elems {
			v, err := Eval(ctx, L, P, I, sub)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return value.VArray{Items: items}, nil

	case ast.ArrayComp:
		return evalArrayComp(ctx, L, P, I, n)

	case ast.EnumLit:
		if n.Hash.IsZero() {
			return nil, RuntimeError("All enums must be pinned")
		}
		return value.VEnum{Owner: n.Hash, Constructor: n.Tag}, nil

	case ast.Var:
		return evalVar(L, I, n)

	case ast.PinnedRef:
		v, ok := P.Lookup(n.Hash)
		if !ok {
			return nil, RuntimeError("unresolved pinned reference " + n.Hash.String())
		}
		return v, nil

	case ast.TypeRepExpr:
		return value.VTypeRep{T: n.T}, nil

	case ast.BinOp:
		return evalBinOp(ctx, L, P, I, n)

	case ast.UnOp:
		return evalUnOp(ctx, L, P, I, n)

	case ast.Lam:
		return makeClosure(L, P, I, n.Params, n.Body), nil

	case ast.App:
		return evalApp(ctx, L, P, I, n)

	case ast.Let:
		return evalLet(ctx, L, P, I, n)

	case ast.If:
		return evalIf(ctx, L, P, I, n)

	case ast.TupleLit:
		items := make([]value.Value, 0, len(n.Elems))
		for _, sub := range n.Elems {
			v, err := Eval(ctx, L, P, I, sub)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return value.VTuple{Items: items}, nil

	case ast.OneLit:
		inner, err := Eval(ctx, L, P, I, n.Inner)
		if err != nil {
			return nil, err
		}
		return value.VOne{Inner: inner}, nil

	case ast.EmptyLit:
		return value.VEmpty{}, nil

	case ast.Assert:
		return evalAssert(ctx, L, P, I, n)

	case ast.Case:
		return evalCase(ctx, L, P, I, n)

	case ast.CommentAbove:
		return Eval(ctx, L, P, I, n.Inner)
	case ast.CommentAfter:
		return Eval(ctx, L, P, I, n.Inner)
	case ast.CommentBelow:
		return Eval(ctx, L, P, I, n.Inner)
	case ast.Bracketed:
		return Eval(ctx, L, P, I, n.Inner)
	case ast.RenameModule:
		return Eval(ctx, L, P, I, n.Inner)
	case ast.OpenModule:
		return Eval(ctx, L, P, I, n.Inner)

	default:
		return nil, RuntimeError("eval: unhandled expression node")
	}
}

// intLitFun implements spec.md §4.1's numeric-literal dispatch: an
// integer literal is not a value yet, it is a function from a runtime
// type rep to a value.
func intLitFun(n int64) value.Value {
	return value.VFun{
		Name: "numeric-literal",
		Call: func(rep value.Value) (value.Value, error) {
			tv, ok := rep.(value.VTypeRep)
			if !ok {
				return nil, RuntimeError("Invalid runtime rep for numeric constant")
			}
			switch tv.T.(type) {
			case types.TInt:
				return value.VInt{I: n}, nil
			case types.TDouble:
				return value.VDouble{D: float64(n)}, nil
			default:
				return nil, RuntimeError("Invalid runtime rep for numeric constant")
			}
		},
	}
}

func evalInterpString(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.InterpString) (value.Value, error) {
	var b []byte
	for _, chunk := range n.Chunks {
		if chunk.Expr == nil {
			b = append(b, chunk.Literal...)
			continue
		}
		v, err := Eval(ctx, L, P, I, chunk.Expr)
		if err != nil {
			return nil, err
		}
		b = append(b, v.Pretty()...)
	}
	return value.VText{S: string(b)}, nil
}

func evalVar(L env.Lexical, I env.Implicit, n ast.Var) (value.Value, error) {
	if n.Id.Implicit {
		v, ok := I.Lookup(n.Id.Name)
		if !ok {
			return nil, NotFoundInImplicitEnv(n.Id.Name)
		}
		return v, nil
	}
	v, ok := L.Lookup(n.Id)
	if !ok {
		return nil, RuntimeError("unbound variable " + n.Id.Name)
	}
	return v, nil
}

func evalBinOp(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.BinOp) (value.Value, error) {
	opFn, ok := P.Lookup(n.Hash)
	if !ok {
		return nil, RuntimeError("unresolved operator " + n.Hash.String())
	}
	fn, ok := opFn.(value.VFun)
	if !ok {
		return nil, RuntimeError("pinned operator is not a function")
	}
	lv, err := Eval(ctx, L, P, I, n.Lhs)
	if err != nil {
		return nil, err
	}
	rv, err := Eval(ctx, L, P, I, n.Rhs)
	if err != nil {
		return nil, err
	}
	partial, err := fn.Call(lv)
	if err != nil {
		return nil, err
	}
	partialFn, ok := partial.(value.VFun)
	if !ok {
		return nil, RuntimeError("binary operator did not curry to a second argument")
	}
	return partialFn.Call(rv)
}

func evalUnOp(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.UnOp) (value.Value, error) {
	opFn, ok := P.Lookup(n.Hash)
	if !ok {
		return nil, RuntimeError("unresolved operator " + n.Hash.String())
	}
	fn, ok := opFn.(value.VFun)
	if !ok {
		return nil, RuntimeError("pinned operator is not a function")
	}
	operand, err := Eval(ctx, L, P, I, n.Operand)
	if err != nil {
		return nil, err
	}
	return fn.Call(operand)
}

// makeClosure curries a Lam into a chain of VFuns, one per parameter,
// each closing over the environments captured at definition time (plus
// whatever earlier parameters in the same Lam have already bound).
func makeClosure(L env.Lexical, P env.Pinned, I env.Implicit, params []ast.Param, body ast.Expr) value.Value {
	if len(params) == 0 {
		// A zero-argument Lam evaluates its body immediately under the
		// captured environment; there is no argument to curry on.
		v, err := Eval(context.Background(), L, P, I, body)
		if err != nil {
			// The evaluation error is deferred to first use: the Lam
			// becomes a VFun that returns err whenever it is called.
			return value.VFun{Name: "lam-error", Call: func(value.Value) (value.Value, error) { return nil, err }}
		}
		return v
	}

	p := params[0]
	rest := params[1:]
	return value.VFun{
		Name: "lam",
		Call: func(arg value.Value) (value.Value, error) {
			nextL := L
			if !p.Wildcard {
				nextL = L.Extend(p.Id, arg)
			}
			if len(rest) == 0 {
				return Eval(context.Background(), nextL, P, I, body)
			}
			return makeClosure(nextL, P, I, rest, body), nil
		},
	}
}

func evalApp(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.App) (value.Value, error) {
	fv, err := Eval(ctx, L, P, I, n.Fn)
	if err != nil {
		return nil, err
	}
	fn, ok := fv.(value.VFun)
	if !ok {
		return nil, RuntimeError("cannot apply a non-function value")
	}
	av, err := Eval(ctx, L, P, I, n.Arg)
	if err != nil {
		return nil, err
	}
	return fn.Call(av)
}

func evalLet(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.Let) (value.Value, error) {
	v, err := Eval(ctx, L, P, I, n.Value)
	if err != nil {
		return nil, err
	}
	if n.Id.Implicit {
		return Eval(ctx, L, P, I.Extend(n.Id.Name, v), n.Body)
	}
	return Eval(ctx, L.Extend(n.Id, v), P, I, n.Body)
}

func evalIf(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.If) (value.Value, error) {
	cv, err := Eval(ctx, L, P, I, n.Cond)
	if err != nil {
		return nil, err
	}
	switch {
	case value.IsBoolTrue(cv):
		return Eval(ctx, L, P, I, n.Then)
	case value.IsBoolFalse(cv):
		return Eval(ctx, L, P, I, n.Else)
	default:
		return nil, RuntimeError("if condition did not evaluate to a boolean")
	}
}

func evalAssert(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.Assert) (value.Value, error) {
	cv, err := Eval(ctx, L, P, I, n.Cond)
	if err != nil {
		return nil, err
	}
	switch {
	case value.IsBoolTrue(cv):
		return Eval(ctx, L, P, I, n.Body)
	case value.IsBoolFalse(cv):
		return nil, AssertionFailed()
	default:
		return nil, RuntimeError("assert condition did not evaluate to a boolean")
	}
}

func evalCase(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.Case) (value.Value, error) {
	scrut, err := Eval(ctx, L, P, I, n.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		if err := ctx.Err(); err != nil {
			return nil, RuntimeError(err.Error())
		}
		extL, ok := match(arm.Pattern, scrut, L)
		if ok {
			return Eval(ctx, extL, P, I, arm.Body)
		}
	}
	return nil, RuntimeError("non-exhaustive patterns in case")
}

func evalArrayComp(ctx context.Context, L env.Lexical, P env.Pinned, I env.Implicit, n ast.ArrayComp) (value.Value, error) {
	var out []value.Value
	var recurse func(gi int, curL env.Lexical) error
	recurse = func(gi int, curL env.Lexical) error {
		if gi == len(n.Generators) {
			if n.Cond != nil {
				cv, err := Eval(ctx, curL, P, I, n.Cond)
				if err != nil {
					return err
				}
				switch {
				case value.IsBoolTrue(cv):
				case value.IsBoolFalse(cv):
					return nil
				default:
					return RuntimeError("comprehension filter did not evaluate to a boolean")
				}
			}
			v, err := Eval(ctx, curL, P, I, n.Body)
			if err != nil {
				return err
			}
			out = append(out, v)
			return nil
		}
		gen := n.Generators[gi]
		sv, err := Eval(ctx, curL, P, I, gen.Source)
		if err != nil {
			return err
		}
		arr, ok := sv.(value.VArray)
		if !ok {
			return RuntimeError("comprehension generator source is not an array")
		}
		for _, item := range arr.Items {
			if err := ctx.Err(); err != nil {
				return RuntimeError(err.Error())
			}
			if err := recurse(gi+1, curL.Extend(gen.Var, item)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(0, L); err != nil {
		return nil, err
	}
	return value.VArray{Items: out}, nil
}
