package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
)

// Calculator runs the fuzzy engine for the catchment model. It is immutable
// and safe for concurrent use.
type Calculator struct {
	engine  *fuzzy.Engine
	observe func(output string, elapsed time.Duration)
}

// NewCalculator wraps a rule bank built against a registry that declares the
// land_form and land_cover inputs and the slope, impervious and catchment
// outputs.
func NewCalculator(bank *fuzzy.RuleBank) (*Calculator, error) {
	reg := bank.Registry()
	for _, name := range []string{VarLandForm, VarLandCover} {
		if v, ok := reg.Lookup(name); !ok || v.Role() != fuzzy.Antecedent {
			return nil, fmt.Errorf("%w: registry lacks input %q", fuzzy.ErrUnknownVariable, name)
		}
	}
	for _, name := range Outputs {
		if v, ok := reg.Lookup(name); !ok || v.Role() != fuzzy.Consequent {
			return nil, fmt.Errorf("%w: registry lacks output %q", fuzzy.ErrUnknownVariable, name)
		}
	}
	return &Calculator{engine: fuzzy.NewEngine(bank)}, nil
}

// NewDefaultCalculator builds a calculator over the built-in variables and rules.
func NewDefaultCalculator() (*Calculator, error) {
	reg, err := DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("default registry: %w", err)
	}
	bank, err := DefaultRuleBank(reg)
	if err != nil {
		return nil, fmt.Errorf("default rule bank: %w", err)
	}
	return NewCalculator(bank)
}

// Bank returns the rule bank the calculator evaluates.
func (c *Calculator) Bank() *fuzzy.RuleBank { return c.engine.Bank() }

// WithObserver returns a copy of the calculator that reports the duration of
// every inference to fn.
func (c *Calculator) WithObserver(fn func(output string, elapsed time.Duration)) *Calculator {
	return &Calculator{engine: c.engine, observe: fn}
}

// ComputeAll validates both codes, then infers the three outputs in parallel.
// When more than one output fails, the error of the first in Outputs order is
// returned.
func (c *Calculator) ComputeAll(form LandForm, cover LandCover) (Estimate, error) {
	inputs, err := categoryInputs(form, cover)
	if err != nil {
		return Estimate{}, err
	}

	values := make([]float64, len(Outputs))
	errs := make([]error, len(Outputs))
	var wg sync.WaitGroup
	for i, output := range Outputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			values[i], errs[i] = c.infer(output, inputs)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Estimate{}, err
		}
	}
	return Estimate{Slope: values[0], Impervious: values[1], Catchment: values[2]}, nil
}

// Compute infers a single output.
func (c *Calculator) Compute(output string, form LandForm, cover LandCover) (float64, error) {
	inputs, err := categoryInputs(form, cover)
	if err != nil {
		return 0, err
	}
	return c.infer(output, inputs)
}

// Explain infers a single output and reports the rules that fired.
func (c *Calculator) Explain(output string, form LandForm, cover LandCover) (fuzzy.Evaluation, error) {
	inputs, err := categoryInputs(form, cover)
	if err != nil {
		return fuzzy.Evaluation{}, err
	}
	return c.engine.Evaluate(output, inputs)
}

// DecodeLabel names the output term with the highest membership at value.
func (c *Calculator) DecodeLabel(output string, value float64) (string, error) {
	return c.engine.Decode(output, value)
}

func (c *Calculator) infer(output string, inputs map[string]float64) (float64, error) {
	if c.observe == nil {
		return c.engine.Infer(output, inputs)
	}
	start := time.Now()
	v, err := c.engine.Infer(output, inputs)
	c.observe(output, time.Since(start))
	return v, err
}

func categoryInputs(form LandForm, cover LandCover) (map[string]float64, error) {
	if !form.Valid() {
		return nil, fmt.Errorf("%w: land form code %d outside 1..%d", ErrInvalidInput, int(form), len(landFormNames))
	}
	if !cover.Valid() {
		return nil, fmt.Errorf("%w: land cover code %d outside 1..%d", ErrInvalidInput, int(cover), len(landCoverNames))
	}
	return map[string]float64{
		VarLandForm:  float64(form),
		VarLandCover: float64(cover),
	}, nil
}
