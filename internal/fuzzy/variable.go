package fuzzy

import (
	"fmt"
	"strings"
)

// Role says whether a variable is read from inputs or produced by inference.
type Role int

const (
	Antecedent Role = iota + 1
	Consequent
)

func (r Role) String() string {
	switch r {
	case Antecedent:
		return "antecedent"
	case Consequent:
		return "consequent"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole accepts "antecedent"/"input" and "consequent"/"output".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "antecedent", "input":
		return Antecedent, nil
	case "consequent", "output":
		return Consequent, nil
	}
	return 0, fmt.Errorf("unknown variable role %q", s)
}

// Variable is a named linguistic variable: a domain plus ordered terms.
type Variable struct {
	name   string
	role   Role
	domain Domain
	terms  []Term
	index  map[string]int
}

// NewVariable validates every term shape and label. A variable may be declared
// without terms; decoding it then fails with ErrEmptyVariable.
func NewVariable(name string, role Role, domain Domain, terms ...Term) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrUnknownVariable)
	}
	if role != Antecedent && role != Consequent {
		return nil, fmt.Errorf("variable %q: invalid role %d", name, int(role))
	}

	v := &Variable{
		name:   name,
		role:   role,
		domain: domain,
		terms:  make([]Term, 0, len(terms)),
		index:  make(map[string]int, len(terms)),
	}
	for _, t := range terms {
		if t.Label == "" {
			return nil, fmt.Errorf("variable %q: %w: empty label", name, ErrUnknownTerm)
		}
		if _, dup := v.index[t.Label]; dup {
			return nil, fmt.Errorf("variable %q: %w %q", name, ErrDuplicateTerm, t.Label)
		}
		if err := t.Shape.Validate(); err != nil {
			return nil, fmt.Errorf("variable %q term %q: %w", name, t.Label, err)
		}
		v.index[t.Label] = len(v.terms)
		v.terms = append(v.terms, t)
	}
	return v, nil
}

func (v *Variable) Name() string   { return v.name }
func (v *Variable) Role() Role     { return v.role }
func (v *Variable) Domain() Domain { return v.domain }

// Terms returns the terms in declaration order.
func (v *Variable) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Labels returns the term labels in declaration order.
func (v *Variable) Labels() []string {
	out := make([]string, len(v.terms))
	for i, t := range v.terms {
		out[i] = t.Label
	}
	return out
}

// Term looks up a term by label.
func (v *Variable) Term(label string) (Term, bool) {
	i, ok := v.index[label]
	if !ok {
		return Term{}, false
	}
	return v.terms[i], true
}

// Membership evaluates the named term at x.
func (v *Variable) Membership(label string, x float64) (float64, error) {
	t, ok := v.Term(label)
	if !ok {
		return 0, fmt.Errorf("%w %q on variable %q", ErrUnknownTerm, label, v.name)
	}
	return Membership(t, x), nil
}

// Registry is the ordered set of variables a rule bank is built against.
type Registry struct {
	vars   []*Variable
	byName map[string]*Variable
}

// NewRegistry rejects nil entries and duplicate names.
func NewRegistry(vars ...*Variable) (*Registry, error) {
	r := &Registry{
		vars:   make([]*Variable, 0, len(vars)),
		byName: make(map[string]*Variable, len(vars)),
	}
	for _, v := range vars {
		if v == nil {
			return nil, fmt.Errorf("%w: nil variable", ErrUnknownVariable)
		}
		if _, dup := r.byName[v.name]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateVariable, v.name)
		}
		r.byName[v.name] = v
		r.vars = append(r.vars, v)
	}
	return r, nil
}

// Lookup finds a variable by name.
func (r *Registry) Lookup(name string) (*Variable, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// Variables returns all variables in declaration order.
func (r *Registry) Variables() []*Variable {
	out := make([]*Variable, len(r.vars))
	copy(out, r.vars)
	return out
}

// Inputs returns the antecedent variables in declaration order.
func (r *Registry) Inputs() []*Variable { return r.withRole(Antecedent) }

// Outputs returns the consequent variables in declaration order.
func (r *Registry) Outputs() []*Variable { return r.withRole(Consequent) }

func (r *Registry) withRole(role Role) []*Variable {
	var out []*Variable
	for _, v := range r.vars {
		if v.role == role {
			out = append(out, v)
		}
	}
	return out
}

func (r *Registry) lookupRole(name string, role Role) (*Variable, error) {
	v, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariable, name)
	}
	if v.role != role {
		return nil, fmt.Errorf("%w %q: declared as %s, used as %s", ErrUnknownVariable, name, v.role, role)
	}
	return v, nil
}

func (r *Registry) resolveTerm(name, label string, role Role) (*Variable, Term, error) {
	v, err := r.lookupRole(name, role)
	if err != nil {
		return nil, Term{}, err
	}
	t, ok := v.Term(label)
	if !ok {
		return nil, Term{}, fmt.Errorf("%w %q on variable %q", ErrUnknownTerm, label, name)
	}
	return v, t, nil
}
