package domain

import (
	"fmt"
	"math"
)

// MaxAreaHa bounds request areas; larger values are almost always unit errors.
const MaxAreaHa = 10000

// inchesToMM converts depression storage depths from the tabulated inches.
const inchesToMM = 25.4

type manning struct{ imperv, perv float64 }

type depression struct{ imperv, perv, pctZero float64 }

// Engineering defaults keyed by catchment type label.
var (
	manningByType = map[string]manning{
		"urban":     {0.013, 0.15},
		"suburban":  {0.013, 0.24},
		"rural":     {0.013, 0.41},
		"forests":   {0.40, 0.80},
		"meadows":   {0.15, 0.41},
		"arable":    {0.06, 0.17},
		"mountains": {0.013, 0.05},
	}

	depressionByType = map[string]depression{
		"urban":     {0.05, 0.20, 50},
		"suburban":  {0.05, 0.20, 40},
		"rural":     {0.05, 0.20, 35},
		"forests":   {0.05, 0.30, 5},
		"meadows":   {0.05, 0.20, 10},
		"arable":    {0.05, 0.20, 10},
		"mountains": {0.05, 0.20, 10},
	}

	DefaultInfiltration = Infiltration{Suction: 3.5, Ksat: 0.5, IMD: 0.25, Param4: 7, Param5: 0}
)

// SubareaFor returns the roughness and depression storage defaults for a
// catchment type label.
func SubareaFor(catchmentType string) (Subarea, error) {
	n, ok := manningByType[catchmentType]
	if !ok {
		return Subarea{}, fmt.Errorf("%w: no engineering defaults for catchment type %q", ErrInvalidInput, catchmentType)
	}
	d := depressionByType[catchmentType]
	return Subarea{
		NImperv: n.imperv,
		NPerv:   n.perv,
		SImperv: d.imperv * inchesToMM,
		SPerv:   d.perv * inchesToMM,
		PctZero: d.pctZero,
		RouteTo: "OUTLET",
	}, nil
}

// Width is the characteristic overland flow width of a square subcatchment of
// the given area: half its side length, in metres.
func Width(areaHa float64) float64 {
	m2 := areaHa * 10_000
	return round2(m2 / (2 * math.Sqrt(m2)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
