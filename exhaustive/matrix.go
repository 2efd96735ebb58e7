package exhaustive

import "sort"

// Row is one pattern-vector: one cell per column of a match matrix.
type Row []Pattern

// Matrix is the full set of pattern rows a `case` expression's arms
// elaborate to, one row per arm (spec.md §4.3).

type Matrix []Row

// Col returns the first column of m, i.e. the root pattern of every row.
func Col(m Matrix) []Pattern {
	out := make([]Pattern, len(m))
	for i, row := range m {
		out[i] = row[0]
	}
	return out
}

// ConNames collects the distinct constructors appearing as a root
// pattern in col, in first-seen order. Wildcard cells contribute
// nothing.
func ConNames(col []Pattern) []Constructor {
	var out []Constructor
	seen := map[string]bool{}
	for _, p := range col {
		c, ok := rootConstructor(p)
		if !ok {
			continue
		}
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}

// IsCompleteSignature reports whether present covers every constructor
// of the owning type, given sib (any one constructor's Siblings list).
// When it does not, it also returns the witness constructor a caller can
// use to build a missing-arm pattern: the lexicographically-smallest
// constructor of sib absent from present, or, when sib is nil (the type
// has unboundedly many inhabitants — int, text, double, array, and so
// can never be completely covered by a finite constructor set), a
// freshly synthesized one via successorConstructor. The witness return
// is the zero Constructor when complete is true.
func IsCompleteSignature(present []Constructor, sib []Constructor) (complete bool, missing Constructor) {
	if sib == nil {
		return false, successorConstructor(present)
	}
	have := map[string]bool{}
	for _, c := range present {
		have[c.Name] = true
	}
	sorted := append([]Constructor(nil), sib...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, c := range sorted {
		if !have[c.Name] {
			return false, c
		}
	}
	return true, Constructor{}
}

// successorConstructor synthesizes a witness constructor for an infinite
// signature by delegating to the Succ of any encountered constructor
// (they all share a kind, so any one's Succ will do); with no
// constructors encountered at all there is no kind information to work
// from, so defaultSuccessor stands in.
func successorConstructor(present []Constructor) Constructor {
	for _, c := range present {
		if c.Succ != nil {
			return c.Succ(present)
		}
	}
	return defaultSuccessor(present)
}

// defaultSuccessor is the fallback witness for a hand-built infinite
// Constructor that carries no Succ: string-double the longest name seen,
// or a fixed placeholder if the column never saw a constructor at all.
func defaultSuccessor(present []Constructor) Constructor {
	if len(present) == 0 {
		return Constructor{Name: "<new>"}
	}
	longest := present[0].Name
	for _, c := range present[1:] {
		if len(c.Name) > len(longest) {
			longest = c.Name
		}
	}
	return Constructor{Name: longest + longest}
}

// Specialize builds S(c, m): every row of m whose root pattern could
// produce a value headed by c, rewritten with c's Arity argument
// columns spliced in where the root used to be. A row headed by a
// different constructor is dropped; a wildcard row expands to c.Arity
// fresh wildcards.
func Specialize(c Constructor, m Matrix) Matrix {
	var out Matrix
	for _, row := range m {
		head := row[0]
		rest := row[1:]
		switch {
		case head.Wildcard:
			args := make([]Pattern, c.Arity)
			for i := range args {
				args[i] = Wild()
			}
			out = append(out, append(append(Row{}, args...), rest...))
		case head.Con.Name == c.Name:
			newRow := append(append(Row{}, head.Args...), rest...)
			out = append(out, newRow)
		}
	}
	return out
}

// SpecializeVector applies the same splice Specialize performs on a
// matrix row to a single pattern vector q, used to build S(c, q) in
// Maranget's recursion.
func SpecializeVector(c Constructor, q Row) (Row, bool) {
	head := q[0]
	rest := q[1:]
	switch {
	case head.Wildcard:
		args := make([]Pattern, c.Arity)
		for i := range args {
			args[i] = Wild()
		}
		return append(append(Row{}, args...), rest...), true
	case head.Con.Name == c.Name:
		return append(append(Row{}, head.Args...), rest...), true
	default:
		return nil, false
	}
}

// DefaultMatrix builds D(m): the rows of m whose root pattern is a
// wildcard, with that first column dropped.
func DefaultMatrix(m Matrix) Matrix {
	var out Matrix
	for _, row := range m {
		if row[0].Wildcard {
			out = append(out, row[1:])
		}
	}
	return out
}

// IsUseful reports whether q is useful relative to m: whether there is
// a value q matches that no row of m already matches (Maranget 2007,
// algorithm U).
func IsUseful(m Matrix, q Row) bool {
	useful, _ := isUsefulWitness(m, q)
	return useful
}

// isUsefulWitness is Maranget's algorithm I: like IsUseful, but when q
// is useful it also reconstructs a concrete value q matches that m
// doesn't — a pattern vector of the same width as q. unspecializeWitness
// undoes each Specialize step as the recursion unwinds, splicing a
// recursive witness's first c.Arity cells back under c so the returned
// row always has q's original width.
func isUsefulWitness(m Matrix, q Row) (bool, Row) {
	if len(q) == 0 {
		if len(m) == 0 {
			return true, Row{}
		}
		return false, nil
	}

	head := q[0]
	if !head.Wildcard {
		c := head.Con
		sq, ok := SpecializeVector(c, q)
		if !ok {
			return false, nil
		}
		useful, witness := isUsefulWitness(Specialize(c, m), sq)
		if !useful {
			return false, nil
		}
		return true, unspecializeWitness(c, witness)
	}

	col := Col(m)
	present := ConNames(col)
	var sib []Constructor
	for _, p := range col {
		if c, ok := rootConstructor(p); ok && c.Siblings != nil {
			sib = c.Siblings
			break
		}
	}
	complete, missing := IsCompleteSignature(present, sib)
	if complete {
		for _, c := range present {
			sq, ok := SpecializeVector(c, q)
			if !ok {
				continue
			}
			useful, witness := isUsefulWitness(Specialize(c, m), sq)
			if useful {
				return true, unspecializeWitness(c, witness)
			}
		}
		return false, nil
	}

	useful, witnessRest := isUsefulWitness(DefaultMatrix(m), q[1:])
	if !useful {
		return false, nil
	}
	args := make([]Pattern, missing.Arity)
	for i := range args {
		args[i] = Wild()
	}
	return true, append(Row{Con(missing, args...)}, witnessRest...)
}

// unspecializeWitness rebuilds the column Specialize(c, ...) removed:
// witness's first c.Arity cells become c's arguments, and the rest of
// witness (q's untouched tail columns) follow unchanged.
func unspecializeWitness(c Constructor, witness Row) Row {
	args := append([]Pattern(nil), witness[:c.Arity]...)
	rest := witness[c.Arity:]
	return append(Row{Con(c, args...)}, rest...)
}

// Exhaustive reports whether m covers every possible scrutinee shape of
// the given width. When it does not, the second return is a concrete
// pattern vector of that width that no row of m matches (spec.md §4.3's
// missing-arm witness), built from the all-wildcards query's own
// usefulness witness; nil when m is exhaustive.
func Exhaustive(m Matrix, width int) (bool, Row) {
	wild := make(Row, width)
	for i := range wild {
		wild[i] = Wild()
	}
	useful, witness := isUsefulWitness(m, wild)
	if useful {
		return false, witness
	}
	return true, nil
}

// Redundant reports whether row i of m is unreachable: useless against
// every row that precedes it.
func Redundant(m Matrix, i int) bool {
	return !IsUseful(m[:i], m[i])
}

// RedundantArm records one arm Maranget's algorithm found unreachable:
// Index is the arm's position in the matrix, CoveredBy the index of the
// earliest row whose presence alone (together with whatever precedes
// it) already makes Index useless — the smallest prefix of m that
// subsumes it.
type RedundantArm struct {
	Index     int
	CoveredBy int
}

// Report is CheckUsefulness's verdict over a full arm list.
type Report struct {
	Exhaustive     bool
	MissingWitness Row
	RedundantArms  []RedundantArm
}

// CheckUsefulness runs Maranget's algorithm over every arm of a `case`
// expression at once: arm-by-arm redundancy (an arm useless against
// every arm above it, with the earliest covering row identified) plus
// overall exhaustiveness with a missing-arm witness, matching spec.md
// §4.3's two diagnostics.
func CheckUsefulness(m Matrix, width int) Report {
	var rep Report
	for i := range m {
		if !Redundant(m, i) {
			continue
		}
		coveredBy := i - 1
		for j := 0; j < i; j++ {
			if !IsUseful(m[:j+1], m[i]) {
				coveredBy = j
				break
			}
		}
		rep.RedundantArms = append(rep.RedundantArms, RedundantArm{Index: i, CoveredBy: coveredBy})
	}
	rep.Exhaustive, rep.MissingWitness = Exhaustive(m, width)
	return rep
}
