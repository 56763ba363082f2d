package fuzzy

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Op tags the node kind of an Expr.
type Op int

const (
	OpPred Op = iota + 1
	OpAnd
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpPred:
		return "pred"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Expr is an antecedent tree. The zero value is the empty expression, which no
// rule may carry.
type Expr struct {
	op          Op
	variable    string
	term        string
	left, right *Expr
}

// Pred asserts "variable is term".
func Pred(variable, term string) Expr {
	return Expr{op: OpPred, variable: variable, term: term}
}

// And combines two expressions with the min t-norm.
func And(l, r Expr) Expr {
	return Expr{op: OpAnd, left: &l, right: &r}
}

// Or combines two expressions with the max s-norm.
func Or(l, r Expr) Expr {
	return Expr{op: OpOr, left: &l, right: &r}
}

// AllOf folds the expressions into a left-leaning And chain. Empty operands are
// skipped; if none remain the result is the empty expression.
func AllOf(exprs ...Expr) Expr {
	return fold(And, exprs)
}

// AnyOf folds the expressions into a left-leaning Or chain.
func AnyOf(exprs ...Expr) Expr {
	return fold(Or, exprs)
}

func fold(join func(l, r Expr) Expr, exprs []Expr) Expr {
	var acc Expr
	for _, e := range exprs {
		switch {
		case e.IsZero():
		case acc.IsZero():
			acc = e
		default:
			acc = join(acc, e)
		}
	}
	return acc
}

func (e Expr) Op() Op           { return e.op }
func (e Expr) IsZero() bool     { return e.op == 0 }
func (e Expr) Variable() string { return e.variable }
func (e Expr) Term() string     { return e.term }

// Operands returns the children of an And or Or node.
func (e Expr) Operands() (Expr, Expr) {
	if e.left == nil || e.right == nil {
		return Expr{}, Expr{}
	}
	return *e.left, *e.right
}

// Preds returns the leaf predicates left to right.
func (e Expr) Preds() []Expr {
	switch e.op {
	case OpPred:
		return []Expr{e}
	case OpAnd, OpOr:
		return append(e.left.Preds(), e.right.Preds()...)
	}
	return nil
}

func (e Expr) String() string {
	switch e.op {
	case OpPred:
		return e.variable + " is " + e.term
	case OpAnd:
		return "(" + e.left.String() + " AND " + e.right.String() + ")"
	case OpOr:
		return "(" + e.left.String() + " OR " + e.right.String() + ")"
	}
	return "<empty>"
}

// validate resolves every predicate against the registry's antecedents.
func (e Expr) validate(reg *Registry) error {
	switch e.op {
	case OpPred:
		_, _, err := reg.resolveTerm(e.variable, e.term, Antecedent)
		return err
	case OpAnd, OpOr:
		if err := e.left.validate(reg); err != nil {
			return err
		}
		return e.right.validate(reg)
	}
	return fmt.Errorf("%w: empty antecedent", ErrIncompleteRule)
}

// Fire evaluates the expression's truth degree for the given crisp inputs.
// Every referenced input must be present and inside its variable's domain.
func Fire(reg *Registry, e Expr, inputs map[string]float64) (float64, error) {
	switch e.op {
	case OpPred:
		v, t, err := reg.resolveTerm(e.variable, e.term, Antecedent)
		if err != nil {
			return 0, err
		}
		x, ok := inputs[e.variable]
		if !ok {
			return 0, fmt.Errorf("%w: missing value for %q", ErrInvalidInput, e.variable)
		}
		if !v.domain.Contains(x) {
			return 0, fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrInvalidInput, e.variable, x, v.domain.min, v.domain.max)
		}
		return Membership(t, x), nil
	case OpAnd, OpOr:
		l, err := Fire(reg, *e.left, inputs)
		if err != nil {
			return 0, err
		}
		r, err := Fire(reg, *e.right, inputs)
		if err != nil {
			return 0, err
		}
		if e.op == OpAnd {
			return math.Min(l, r), nil
		}
		return math.Max(l, r), nil
	}
	return 0, fmt.Errorf("%w: empty antecedent", ErrIncompleteRule)
}

// conjunctions expands the expression into disjunctive normal form. Each
// conjunction is a sorted, de-duplicated list of "variable=term" atoms.
func (e Expr) conjunctions() [][]string {
	switch e.op {
	case OpPred:
		return [][]string{{e.variable + "=" + e.term}}
	case OpOr:
		return append(e.left.conjunctions(), e.right.conjunctions()...)
	case OpAnd:
		var out [][]string
		for _, l := range e.left.conjunctions() {
			for _, r := range e.right.conjunctions() {
				out = append(out, mergeAtoms(l, r))
			}
		}
		return out
	}
	return nil
}

func mergeAtoms(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func atomsKey(atoms []string) string {
	return strings.Join(atoms, "&")
}
