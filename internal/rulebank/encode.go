package rulebank

import (
	"bytes"
	"fmt"

	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
	"gopkg.in/yaml.v3"
)

// Encode renders a rule bank, including its variables, as a YAML document
// that Parse reads back into an equivalent bank.
func Encode(bank *fuzzy.RuleBank) ([]byte, error) {
	doc, err := ToDocument(bank)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDocument converts a bank to its on-disk representation.
func ToDocument(bank *fuzzy.RuleBank) (Document, error) {
	var doc Document
	for _, v := range bank.Registry().Variables() {
		d := v.Domain()
		vs := VariableSpec{Name: v.Name(), Role: v.Role().String(), Min: d.Min(), Max: d.Max(), Step: d.Step()}
		for _, t := range v.Terms() {
			vs.Terms = append(vs.Terms, TermSpec{Label: t.Label, Shape: t.Shape.Kind().String(), Params: t.Shape.Params()})
		}
		doc.Variables = append(doc.Variables, vs)
	}

	for _, r := range bank.Rules() {
		spec, err := ruleSpec(r)
		if err != nil {
			return Document{}, err
		}
		doc.Rules = append(doc.Rules, spec)
	}
	return doc, nil
}

// ruleSpec splits the antecedent's top-level AND chain into plain predicates
// (when) and at most one OR of conjunctions (when_any).
func ruleSpec(r *fuzzy.Rule) (RuleSpec, error) {
	spec := RuleSpec{Name: r.ID(), When: map[string]string{}, Then: r.Consequents()}

	for _, part := range andChain(r.Antecedent()) {
		switch part.Op() {
		case fuzzy.OpPred:
			if _, dup := spec.When[part.Variable()]; dup {
				return RuleSpec{}, fmt.Errorf("rule %q: %w: %s constrained twice", r.ID(), ErrUnencodable, part.Variable())
			}
			spec.When[part.Variable()] = part.Term()
		case fuzzy.OpOr:
			if spec.WhenAny != nil {
				return RuleSpec{}, fmt.Errorf("rule %q: %w: more than one OR group", r.ID(), ErrUnencodable)
			}
			for _, disjunct := range orChain(part) {
				group, ok := predMap(disjunct)
				if !ok {
					return RuleSpec{}, fmt.Errorf("rule %q: %w: nested OR", r.ID(), ErrUnencodable)
				}
				spec.WhenAny = append(spec.WhenAny, group)
			}
		}
	}
	if len(spec.When) == 0 {
		spec.When = nil
	}
	return spec, nil
}

func andChain(e fuzzy.Expr) []fuzzy.Expr {
	if e.Op() != fuzzy.OpAnd {
		return []fuzzy.Expr{e}
	}
	l, r := e.Operands()
	return append(andChain(l), andChain(r)...)
}

func orChain(e fuzzy.Expr) []fuzzy.Expr {
	if e.Op() != fuzzy.OpOr {
		return []fuzzy.Expr{e}
	}
	l, r := e.Operands()
	return append(orChain(l), orChain(r)...)
}

func predMap(e fuzzy.Expr) (map[string]string, bool) {
	out := map[string]string{}
	for _, part := range andChain(e) {
		if part.Op() != fuzzy.OpPred {
			return nil, false
		}
		if _, dup := out[part.Variable()]; dup {
			return nil, false
		}
		out[part.Variable()] = part.Term()
	}
	return out, true
}
