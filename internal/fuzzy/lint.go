package fuzzy

import "fmt"

// LintKind classifies a rule bank warning.
type LintKind string

const (
	// LintDuplicate: two rules share an antecedent and agree on the output.
	LintDuplicate LintKind = "duplicate"
	// LintConflict: two rules share an antecedent and disagree on the output.
	LintConflict LintKind = "conflict"
	// LintOverlap: one antecedent is a strict generalisation of another and
	// the rules disagree on the output.
	LintOverlap LintKind = "overlap"
)

// LintWarning describes a pair of rules whose interaction is decided by
// aggregation rather than by the author.
type LintWarning struct {
	Kind    LintKind
	Output  string
	Rules   [2]string
	Message string
}

func (w LintWarning) String() string {
	return fmt.Sprintf("%s [%s] %s / %s: %s", w.Kind, w.Output, w.Rules[0], w.Rules[1], w.Message)
}

// Lint compares every pair of rules per output. Antecedents are expanded to
// disjunctive normal form and compared conjunction by conjunction. Warnings
// come out in output declaration order, then rule order.
func Lint(bank *RuleBank) []LintWarning {
	var warnings []LintWarning
	for _, out := range bank.reg.Outputs() {
		rules := bank.byOutput[out.name]
		dnf := make([][][]string, len(rules))
		for i, r := range rules {
			dnf[i] = r.antecedent.conjunctions()
		}
		for i := 0; i < len(rules); i++ {
			for j := i + 1; j < len(rules); j++ {
				if w, ok := lintPair(out.name, rules[i], rules[j], dnf[i], dnf[j]); ok {
					warnings = append(warnings, w)
				}
			}
		}
	}
	return warnings
}

func lintPair(output string, a, b *Rule, ca, cb [][]string) (LintWarning, bool) {
	la, lb := a.consequents[output], b.consequents[output]
	pair := [2]string{a.id, b.id}

	for _, x := range ca {
		for _, y := range cb {
			if atomsKey(x) == atomsKey(y) {
				if la == lb {
					return LintWarning{Kind: LintDuplicate, Output: output, Rules: pair,
						Message: fmt.Sprintf("both assign %q when %s", la, atomsKey(x))}, true
				}
				return LintWarning{Kind: LintConflict, Output: output, Rules: pair,
					Message: fmt.Sprintf("%q vs %q when %s", la, lb, atomsKey(x))}, true
			}
			if la != lb && (subset(x, y) || subset(y, x)) {
				return LintWarning{Kind: LintOverlap, Output: output, Rules: pair,
					Message: fmt.Sprintf("%q vs %q where %s overlaps %s", la, lb, atomsKey(x), atomsKey(y))}, true
			}
		}
	}
	return LintWarning{}, false
}

// subset reports whether every atom of small appears in big. Both are sorted.
func subset(small, big []string) bool {
	if len(small) >= len(big) {
		return false
	}
	i := 0
	for _, s := range big {
		if i < len(small) && small[i] == s {
			i++
		}
	}
	return i == len(small)
}
