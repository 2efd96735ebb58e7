// Command infernoeval is a one-shot demo of the evaluator: it runs a
// small fixed set of sample expressions against the default prelude and
// prints their pretty-printed results, standing in for the
// `doIt`-style one-shot evaluation path chazu-maggie/cmd/mag/main.go
// offers alongside its REPL, minus the REPL itself — there is no parser
// in this module to read interactive input against (spec.md §1).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shulhi/inferno/ast"
	"github.com/shulhi/inferno/env"
	"github.com/shulhi/inferno/eval"
	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/prelude"
	"github.com/shulhi/inferno/types"
)

func main() {
	verbose := flag.Bool("v", false, "print each demo expression's description before its result")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: infernoeval [-v]\n\n")
		fmt.Fprintf(os.Stderr, "Evaluates a fixed set of sample Inferno expressions and prints their results.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "infernoeval: fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	P := prelude.Pin(prelude.Default)
	L := env.NewLexical()
	I := env.NewImplicit()
	ctx := context.Background()

	for _, d := range demos() {
		if *verbose {
			fmt.Printf("-- %s\n", d.description)
		}
		v, err := eval.Eval(ctx, L, P, I, d.expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", d.description, err)
			os.Exit(1)
		}
		fmt.Println(v.Pretty())
	}
}

type demo struct {
	description string
	expr        ast.Expr
}

func plusHash() ident.Hash { return prelude.HashFor("Core", "+") }

func demos() []demo {
	litTyped := func(n int64, t types.Type) ast.Expr {
		return ast.App{Fn: ast.IntLit{N: n}, Arg: ast.TypeRepExpr{T: t}}
	}

	return []demo{
		{
			description: "3 + 4",
			expr:        ast.BinOp{Hash: plusHash(), Lhs: litTyped(3, types.TInt{}), Rhs: litTyped(4, types.TInt{})},
		},
		{
			description: "let add1 = fun x -> x + 1 in add1 5",
			expr: ast.Let{
				Id: ident.Named("add1"),
				Value: ast.Lam{
					Params: []ast.Param{{Id: ident.Named("x")}},
					Body:   ast.BinOp{Hash: plusHash(), Lhs: ast.Var{Id: ident.Named("x")}, Rhs: litTyped(1, types.TInt{})},
				},
				Body: ast.App{Fn: ast.Var{Id: ident.Named("add1")}, Arg: litTyped(5, types.TInt{})},
			},
		},
		{
			description: `"x = ${3 + 4}"`,
			expr: ast.InterpString{Chunks: []ast.StringChunk{
				{Literal: "x = "},
				{Expr: ast.BinOp{Hash: plusHash(), Lhs: litTyped(3, types.TInt{}), Rhs: litTyped(4, types.TInt{})}},
			}},
		},
	}
}
