package fuzzy

import (
	"fmt"
	"math"
)

// FiredRule records one rule's contribution to an inference.
type FiredRule struct {
	RuleID   string  `json:"rule_id"`
	Label    string  `json:"label"`
	Strength float64 `json:"strength"`
}

// Evaluation is the detailed result of inferring one output.
type Evaluation struct {
	Output string
	Value  float64
	Fired  []FiredRule
}

// Engine runs Mamdani inference over a rule bank. It holds no per-call state.
type Engine struct {
	bank *RuleBank
}

func NewEngine(bank *RuleBank) *Engine {
	return &Engine{bank: bank}
}

func (e *Engine) Bank() *RuleBank { return e.bank }

// Infer returns the defuzzified value of output for the given crisp inputs.
func (e *Engine) Infer(output string, inputs map[string]float64) (float64, error) {
	ev, err := e.Evaluate(output, inputs)
	if err != nil {
		return 0, err
	}
	return ev.Value, nil
}

// Evaluate performs the same inference as Infer and also reports which rules
// fired and how strongly.
func (e *Engine) Evaluate(output string, inputs map[string]float64) (Evaluation, error) {
	reg := e.bank.reg
	out, err := reg.lookupRole(output, Consequent)
	if err != nil {
		return Evaluation{}, err
	}
	if err := validateInputs(reg, inputs); err != nil {
		return Evaluation{}, err
	}

	grid := out.domain.grid
	aggregate := make([]float64, len(grid))
	var fired []FiredRule

	for _, r := range e.bank.byOutput[output] {
		strength, err := Fire(reg, r.antecedent, inputs)
		if err != nil {
			return Evaluation{}, fmt.Errorf("rule %q: %w", r.id, err)
		}
		if strength <= 0 {
			continue
		}
		label := r.consequents[output]
		term, _ := out.Term(label)
		fired = append(fired, FiredRule{RuleID: r.id, Label: label, Strength: strength})

		for i, y := range grid {
			clipped := math.Min(strength, Membership(term, y))
			if clipped > aggregate[i] {
				aggregate[i] = clipped
			}
		}
	}

	value, ok := centroid(grid, aggregate)
	if !ok {
		return Evaluation{}, &NoApplicableRuleError{Output: output, Inputs: copyInputs(inputs)}
	}
	return Evaluation{Output: output, Value: value, Fired: fired}, nil
}

// Decode returns the label of output that best describes value.
func (e *Engine) Decode(output string, value float64) (string, error) {
	v, err := e.bank.reg.lookupRole(output, Consequent)
	if err != nil {
		return "", err
	}
	return Decode(v, value)
}

func validateInputs(reg *Registry, inputs map[string]float64) error {
	for name, x := range inputs {
		v, err := reg.lookupRole(name, Antecedent)
		if err != nil {
			return err
		}
		if !v.domain.Contains(x) {
			return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrInvalidInput, name, x, v.domain.min, v.domain.max)
		}
	}
	return nil
}

func centroid(grid, mu []float64) (float64, bool) {
	var num, den float64
	for i, y := range grid {
		num += y * mu[i]
		den += mu[i]
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

func copyInputs(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
