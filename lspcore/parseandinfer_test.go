package lspcore_test

import (
	"context"
	"errors"

	"github.com/shulhi/inferno/lspcore"
)

// fakeParser is a trivial ParseAndInfer used by core_test.go: it returns
// two overlapping hover entries, "whole document" over the entire source
// and "first character" over (0,0)-(0,1), and fails when the source is
// empty or contains the literal string "ERROR".
type fakeParser struct{}

func (fakeParser) ParseAndInfer(ctx context.Context, source string) (lspcore.Result, error) {
	if source == "" {
		return lspcore.Result{}, errors.New("empty source")
	}
	if containsError(source) {
		return lspcore.Result{}, errors.New("parse error: ERROR marker present")
	}
	lines := splitLines(source)
	end := lspcore.Position{Line: len(lines) - 1, Character: len(lines[len(lines)-1])}
	return lspcore.Result{
		Hovers: []lspcore.HoverEntry{
			{Range: lspcore.Range{Start: lspcore.Position{Line: 0, Character: 0}, End: end}, Text: "whole document"},
			{Range: lspcore.Range{Start: lspcore.Position{Line: 0, Character: 0}, End: lspcore.Position{Line: 0, Character: 1}}, Text: "first character"},
		},
	}, nil
}

func containsError(s string) bool {
	for i := 0; i+5 <= len(s); i++ {
		if s[i:i+5] == "ERROR" {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
