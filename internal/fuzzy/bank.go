package fuzzy

import "fmt"

// RuleBank is an ordered, read-only collection of rules built against one
// registry, indexed by the outputs each rule constrains.
type RuleBank struct {
	reg      *Registry
	rules    []*Rule
	byID     map[string]*Rule
	byOutput map[string][]*Rule
}

// NewRuleBank re-validates every rule against reg and rejects duplicate ids.
func NewRuleBank(reg *Registry, rules ...*Rule) (*RuleBank, error) {
	b := &RuleBank{
		reg:      reg,
		rules:    make([]*Rule, 0, len(rules)),
		byID:     make(map[string]*Rule, len(rules)),
		byOutput: make(map[string][]*Rule),
	}
	for _, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: nil rule", ErrIncompleteRule)
		}
		if _, dup := b.byID[r.id]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateRule, r.id)
		}
		if err := r.validate(reg); err != nil {
			return nil, err
		}
		b.byID[r.id] = r
		b.rules = append(b.rules, r)
	}
	for _, out := range reg.Outputs() {
		for _, r := range b.rules {
			if _, ok := r.consequents[out.name]; ok {
				b.byOutput[out.name] = append(b.byOutput[out.name], r)
			}
		}
	}
	return b, nil
}

func (b *RuleBank) Registry() *Registry { return b.reg }
func (b *RuleBank) Len() int            { return len(b.rules) }

// Rules returns all rules in insertion order.
func (b *RuleBank) Rules() []*Rule {
	out := make([]*Rule, len(b.rules))
	copy(out, b.rules)
	return out
}

// Rule looks up a rule by id.
func (b *RuleBank) Rule(id string) (*Rule, bool) {
	r, ok := b.byID[id]
	return r, ok
}

// RulesFor returns, in insertion order, the rules that constrain output.
func (b *RuleBank) RulesFor(output string) []*Rule {
	src := b.byOutput[output]
	out := make([]*Rule, len(src))
	copy(out, src)
	return out
}

// Counts reports how many rules constrain each output.
func (b *RuleBank) Counts() map[string]int {
	out := make(map[string]int, len(b.byOutput))
	for _, v := range b.reg.Outputs() {
		out[v.name] = len(b.byOutput[v.name])
	}
	return out
}
