package fuzzy

import (
	"fmt"
	"sort"
)

// Rule maps an antecedent to one label per constrained output.
type Rule struct {
	id          string
	antecedent  Expr
	consequents map[string]string
}

func (r *Rule) ID() string       { return r.id }
func (r *Rule) Antecedent() Expr { return r.antecedent }

func (r *Rule) String() string {
	return fmt.Sprintf("%s: IF %s THEN %v", r.id, r.antecedent, r.consequents)
}

// Consequent returns the label the rule assigns to output, if any.
func (r *Rule) Consequent(output string) (string, bool) {
	label, ok := r.consequents[output]
	return label, ok
}

// Consequents returns a copy of the output to label mapping.
func (r *Rule) Consequents() map[string]string {
	out := make(map[string]string, len(r.consequents))
	for k, v := range r.consequents {
		out[k] = v
	}
	return out
}

// Outputs lists the constrained outputs in lexical order.
func (r *Rule) Outputs() []string {
	out := make([]string, 0, len(r.consequents))
	for k := range r.consequents {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Rule) validate(reg *Registry) error {
	if err := r.antecedent.validate(reg); err != nil {
		return fmt.Errorf("rule %q: %w", r.id, err)
	}
	for output, label := range r.consequents {
		if _, _, err := reg.resolveTerm(output, label, Consequent); err != nil {
			return fmt.Errorf("rule %q: %w", r.id, err)
		}
	}
	return nil
}

// RuleBuilder assembles a Rule fluently:
//
//	r, err := fuzzy.NewRuleBuilder(reg, "rural_on_flats").
//		When("land_cover", "rural").
//		When("land_form", "flats_and_plateaus").
//		Then("slope", "flats_and_plateaus").
//		Build()
//
// References are resolved as each step is added. The first failure is kept and
// returned from Build; later steps are ignored.
type RuleBuilder struct {
	reg         *Registry
	id          string
	antecedent  Expr
	consequents map[string]string
	err         error
}

func NewRuleBuilder(reg *Registry, id string) *RuleBuilder {
	return &RuleBuilder{reg: reg, id: id, consequents: make(map[string]string)}
}

// When ANDs the predicate "variable is term" onto the antecedent.
func (b *RuleBuilder) When(variable, term string) *RuleBuilder {
	return b.WhenExpr(Pred(variable, term))
}

// WhenExpr ANDs an arbitrary expression onto the antecedent.
func (b *RuleBuilder) WhenExpr(e Expr) *RuleBuilder {
	if b.err != nil {
		return b
	}
	if err := e.validate(b.reg); err != nil {
		b.err = fmt.Errorf("rule %q: %w", b.id, err)
		return b
	}
	b.antecedent = AllOf(b.antecedent, e)
	return b
}

// Then assigns label to output. Re-assigning an output to a different label
// is an error.
func (b *RuleBuilder) Then(output, label string) *RuleBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.reg.resolveTerm(output, label, Consequent); err != nil {
		b.err = fmt.Errorf("rule %q: %w", b.id, err)
		return b
	}
	if prev, ok := b.consequents[output]; ok && prev != label {
		b.err = fmt.Errorf("rule %q: %w: %s is both %q and %q", b.id, ErrConflictingOutcome, output, prev, label)
		return b
	}
	b.consequents[output] = label
	return b
}

// Build returns the rule or the first error recorded while building it.
func (b *RuleBuilder) Build() (*Rule, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.id == "" {
		return nil, fmt.Errorf("%w: missing rule id", ErrIncompleteRule)
	}
	if b.antecedent.IsZero() {
		return nil, fmt.Errorf("rule %q: %w: no antecedents", b.id, ErrIncompleteRule)
	}
	if len(b.consequents) == 0 {
		return nil, fmt.Errorf("rule %q: %w: no consequents", b.id, ErrIncompleteRule)
	}
	consequents := make(map[string]string, len(b.consequents))
	for k, v := range b.consequents {
		consequents[k] = v
	}
	return &Rule{id: b.id, antecedent: b.antecedent, consequents: consequents}, nil
}
