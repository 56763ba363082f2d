package domain

import (
	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
)

// Variable names shared by the default registry, rule files and messages.
const (
	VarLandForm   = "land_form"
	VarLandCover  = "land_cover"
	VarSlope      = "slope"
	VarImpervious = "impervious"
	VarCatchment  = "catchment"
)

// Outputs lists the inferred variables in the order results are reported.
var Outputs = []string{VarSlope, VarImpervious, VarCatchment}

// Default defuzzification resolution per output.
const (
	DefaultSlopeStep      = 0.1
	DefaultImperviousStep = 0.5
	DefaultCatchmentStep  = 0.5
)

type termDef struct {
	label string
	a     float64
	b     float64
	c     float64
}

var slopeTerms = []termDef{
	{"marshes_and_lowlands", 0, 0, 1},
	{"flats_and_plateaus", 0, 1, 2.5},
	{"flats_and_plateaus_in_combination_with_hills", 1, 2.5, 5},
	{"hills_with_gentle_slopes", 2.5, 5, 8},
	{"steeper_hills_and_foothills", 5, 8, 15},
	{"hills_and_outcrops_of_mountain_ranges", 8, 15, 20},
	{"higher_hills", 15, 20, 30},
	{"mountains", 20, 30, 40},
	{"highest_mountains", 30, 50, 60},
}

var imperviousTerms = []termDef{
	{"marshes", 0, 0, 2},
	{"arable", 0, 2, 4},
	{"meadows", 2, 5, 8},
	{"forests", 5, 7, 9},
	{"rural", 7, 11, 15},
	{"suburban_weakly_impervious", 10, 25, 40},
	{"suburban_highly_impervious", 35, 50, 65},
	{"urban_weakly_impervious", 30, 45, 60},
	{"urban_moderately_impervious", 50, 65, 80},
	{"urban_highly_impervious", 75, 85, 100},
	{"mountains_rocky", 20, 40, 60},
	{"mountains_vegetated", 5, 15, 25},
}

var catchmentTerms = []termDef{
	{"urban", 0, 0, 15},
	{"suburban", 0, 15, 30},
	{"rural", 15, 30, 45},
	{"forests", 30, 45, 60},
	{"meadows", 45, 60, 75},
	{"arable", 60, 75, 90},
	{"mountains", 75, 87, 100},
}

// DefaultRegistry builds the five variables of the catchment model. Category
// inputs use unit-wide triangles centred on each code so a crisp code is a full
// member of exactly one term.
func DefaultRegistry() (*fuzzy.Registry, error) {
	landForm, err := categoryVariable(VarLandForm, landFormNames)
	if err != nil {
		return nil, err
	}
	landCover, err := categoryVariable(VarLandCover, landCoverNames)
	if err != nil {
		return nil, err
	}
	slope, err := outputVariable(VarSlope, 0, 60, DefaultSlopeStep, slopeTerms)
	if err != nil {
		return nil, err
	}
	impervious, err := outputVariable(VarImpervious, 0, 100, DefaultImperviousStep, imperviousTerms)
	if err != nil {
		return nil, err
	}
	catchment, err := outputVariable(VarCatchment, 0, 100, DefaultCatchmentStep, catchmentTerms)
	if err != nil {
		return nil, err
	}
	return fuzzy.NewRegistry(landForm, landCover, slope, impervious, catchment)
}

func categoryVariable(name string, labels []string) (*fuzzy.Variable, error) {
	d, err := fuzzy.NewDomain(name, 0, float64(len(labels)+1), 1)
	if err != nil {
		return nil, err
	}
	terms := make([]fuzzy.Term, len(labels))
	for i, label := range labels {
		k := float64(i + 1)
		terms[i] = fuzzy.Term{Label: label, Shape: fuzzy.Triangular(k-1, k, k+1)}
	}
	return fuzzy.NewVariable(name, fuzzy.Antecedent, d, terms...)
}

func outputVariable(name string, lo, hi, step float64, defs []termDef) (*fuzzy.Variable, error) {
	d, err := fuzzy.NewDomain(name, lo, hi, step)
	if err != nil {
		return nil, err
	}
	terms := make([]fuzzy.Term, len(defs))
	for i, def := range defs {
		terms[i] = fuzzy.Term{Label: def.label, Shape: fuzzy.Triangular(def.a, def.b, def.c)}
	}
	return fuzzy.NewVariable(name, fuzzy.Consequent, d, terms...)
}
