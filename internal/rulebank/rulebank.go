// Package rulebank reads and writes fuzzy rule banks as YAML documents.
//
// A document optionally declares its variables and always lists its rules:
//
//	variables:
//	  - name: slope
//	    role: consequent
//	    min: 0
//	    max: 60
//	    step: 0.1
//	    terms:
//	      - {label: flats_and_plateaus, shape: triangular, params: [0, 1, 2.5]}
//	rules:
//	  - name: rural_on_flats_and_plateaus
//	    when: {land_cover: rural, land_form: flats_and_plateaus}
//	    then: {slope: flats_and_plateaus, impervious: rural, catchment: rural}
//
// Entries under when are ANDed. when_any adds one OR of AND-groups, itself
// ANDed with when. Documents without variables are resolved against a
// caller-supplied registry.
package rulebank

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoRegistry    = errors.New("rule file declares no variables and no fallback registry was given")
	ErrUnencodable   = errors.New("antecedent cannot be expressed as when/when_any")
	ErrEmptyDocument = errors.New("rule file has no rules")
)

// Document is the on-disk shape of a rule bank.
type Document struct {
	Variables []VariableSpec `yaml:"variables,omitempty"`
	Rules     []RuleSpec     `yaml:"rules"`
}

type VariableSpec struct {
	Name  string     `yaml:"name"`
	Role  string     `yaml:"role"`
	Min   float64    `yaml:"min"`
	Max   float64    `yaml:"max"`
	Step  float64    `yaml:"step"`
	Terms []TermSpec `yaml:"terms"`
}

type TermSpec struct {
	Label  string    `yaml:"label"`
	Shape  string    `yaml:"shape"`
	Params []float64 `yaml:"params,flow"`
}

type RuleSpec struct {
	Name    string              `yaml:"name"`
	When    map[string]string   `yaml:"when,omitempty"`
	WhenAny []map[string]string `yaml:"when_any,omitempty"`
	Then    map[string]string   `yaml:"then"`
}

// Loaded is a validated rule bank together with its lint findings.
type Loaded struct {
	Registry *fuzzy.Registry
	Bank     *fuzzy.RuleBank
	Warnings []fuzzy.LintWarning
}

// LoadFile reads and builds the rule bank at path.
func LoadFile(path string, fallback *fuzzy.Registry) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	loaded, err := Parse(bytes.NewReader(data), fallback)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return loaded, nil
}

// Resolve loads the rule file at path against registry, or builds the
// built-in bank when path is empty.
func Resolve(path string, registry *fuzzy.Registry, builtin func(*fuzzy.Registry) (*fuzzy.RuleBank, error)) (*Loaded, error) {
	if path != "" {
		return LoadFile(path, registry)
	}
	bank, err := builtin(registry)
	if err != nil {
		return nil, fmt.Errorf("built-in rule bank: %w", err)
	}
	return &Loaded{Registry: registry, Bank: bank, Warnings: fuzzy.Lint(bank)}, nil
}

// Parse decodes a document, rejecting unknown keys, and builds its rules.
func Parse(r io.Reader, fallback *fuzzy.Registry) (*Loaded, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return Build(doc, fallback)
}

// Build turns a decoded document into a registry and rule bank.
func Build(doc Document, fallback *fuzzy.Registry) (*Loaded, error) {
	if len(doc.Rules) == 0 {
		return nil, ErrEmptyDocument
	}

	reg := fallback
	if len(doc.Variables) > 0 {
		var err error
		if reg, err = buildRegistry(doc.Variables); err != nil {
			return nil, err
		}
	}
	if reg == nil {
		return nil, ErrNoRegistry
	}

	rules := make([]*fuzzy.Rule, 0, len(doc.Rules))
	for _, spec := range doc.Rules {
		r, err := buildRule(reg, spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}

	bank, err := fuzzy.NewRuleBank(reg, rules...)
	if err != nil {
		return nil, err
	}
	return &Loaded{Registry: reg, Bank: bank, Warnings: fuzzy.Lint(bank)}, nil
}

func buildRegistry(specs []VariableSpec) (*fuzzy.Registry, error) {
	vars := make([]*fuzzy.Variable, 0, len(specs))
	for _, vs := range specs {
		role, err := fuzzy.ParseRole(vs.Role)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", vs.Name, err)
		}
		d, err := fuzzy.NewDomain(vs.Name, vs.Min, vs.Max, vs.Step)
		if err != nil {
			return nil, err
		}
		terms := make([]fuzzy.Term, 0, len(vs.Terms))
		for _, ts := range vs.Terms {
			kind, err := fuzzy.ParseShapeKind(ts.Shape)
			if err != nil {
				return nil, fmt.Errorf("variable %q term %q: %w", vs.Name, ts.Label, err)
			}
			shape, err := fuzzy.NewShape(kind, ts.Params)
			if err != nil {
				return nil, fmt.Errorf("variable %q term %q: %w", vs.Name, ts.Label, err)
			}
			terms = append(terms, fuzzy.Term{Label: ts.Label, Shape: shape})
		}
		v, err := fuzzy.NewVariable(vs.Name, role, d, terms...)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return fuzzy.NewRegistry(vars...)
}

func buildRule(reg *fuzzy.Registry, spec RuleSpec) (*fuzzy.Rule, error) {
	b := fuzzy.NewRuleBuilder(reg, spec.Name)
	for _, name := range sortedKeys(spec.When) {
		b.When(name, spec.When[name])
	}
	if len(spec.WhenAny) > 0 {
		groups := make([]fuzzy.Expr, 0, len(spec.WhenAny))
		for _, g := range spec.WhenAny {
			groups = append(groups, conjunction(g))
		}
		b.WhenExpr(fuzzy.AnyOf(groups...))
	}
	for _, name := range sortedKeys(spec.Then) {
		b.Then(name, spec.Then[name])
	}
	return b.Build()
}

func conjunction(m map[string]string) fuzzy.Expr {
	preds := make([]fuzzy.Expr, 0, len(m))
	for _, name := range sortedKeys(m) {
		preds = append(preds, fuzzy.Pred(name, m[name]))
	}
	return fuzzy.AllOf(preds...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
