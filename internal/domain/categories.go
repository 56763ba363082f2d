package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LandForm is the terrain relief class of a subcatchment, coded 1..9 from the
// lowest to the highest relief.
type LandForm int

const (
	MarshesAndLowlands LandForm = iota + 1
	FlatsAndPlateaus
	FlatsAndPlateausWithHills
	HillsWithGentleSlopes
	SteeperHillsAndFoothills
	HillsAndOutcrops
	HigherHills
	Mountains
	HighestMountains
)

var landFormNames = []string{
	"marshes_and_lowlands",
	"flats_and_plateaus",
	"flats_and_plateaus_in_combination_with_hills",
	"hills_with_gentle_slopes",
	"steeper_hills_and_foothills",
	"hills_and_outcrops_of_mountain_ranges",
	"higher_hills",
	"mountains",
	"highest_mountains",
}

// LandCover is the surface cover class of a subcatchment, coded 1..14.
type LandCover int

const (
	PermeableAreas LandCover = iota + 1
	PermeableTerrainOnPlains
	MountainsVegetated
	MountainsRocky
	UrbanWeaklyImpervious
	UrbanModeratelyImpervious
	UrbanHighlyImpervious
	SuburbanWeaklyImpervious
	SuburbanHighlyImpervious
	Rural
	Forests
	Meadows
	Arable
	Marshes
)

var landCoverNames = []string{
	"permeable_areas",
	"permeable_terrain_on_plains",
	"mountains_vegetated",
	"mountains_rocky",
	"urban_weakly_impervious",
	"urban_moderately_impervious",
	"urban_highly_impervious",
	"suburban_weakly_impervious",
	"suburban_highly_impervious",
	"rural",
	"forests",
	"meadows",
	"arable",
	"marshes",
}

// Output term labels, in membership declaration order.
var (
	// SlopeLabels reuse the land form vocabulary: each relief class has a
	// characteristic slope band.
	SlopeLabels = landFormNames

	ImperviousLabels = []string{
		"marshes",
		"arable",
		"meadows",
		"forests",
		"rural",
		"suburban_weakly_impervious",
		"suburban_highly_impervious",
		"urban_weakly_impervious",
		"urban_moderately_impervious",
		"urban_highly_impervious",
		"mountains_rocky",
		"mountains_vegetated",
	}

	CatchmentLabels = []string{
		"urban",
		"suburban",
		"rural",
		"forests",
		"meadows",
		"arable",
		"mountains",
	}
)

func (f LandForm) Valid() bool { return f >= MarshesAndLowlands && f <= HighestMountains }

func (f LandForm) String() string {
	if !f.Valid() {
		return fmt.Sprintf("LandForm(%d)", int(f))
	}
	return landFormNames[f-1]
}

func (c LandCover) Valid() bool { return c >= PermeableAreas && c <= Marshes }

func (c LandCover) String() string {
	if !c.Valid() {
		return fmt.Sprintf("LandCover(%d)", int(c))
	}
	return landCoverNames[c-1]
}

// AllLandForms returns every land form in code order.
func AllLandForms() []LandForm {
	out := make([]LandForm, len(landFormNames))
	for i := range out {
		out[i] = LandForm(i + 1)
	}
	return out
}

// AllLandCovers returns every land cover in code order.
func AllLandCovers() []LandCover {
	out := make([]LandCover, len(landCoverNames))
	for i := range out {
		out[i] = LandCover(i + 1)
	}
	return out
}

// LandFormNames returns the land form names sorted alphabetically.
func LandFormNames() []string { return sortedCopy(landFormNames) }

// LandCoverNames returns the land cover names sorted alphabetically.
func LandCoverNames() []string { return sortedCopy(landCoverNames) }

// ParseLandForm accepts a category name (case-insensitive) or its numeric code.
func ParseLandForm(s string) (LandForm, error) {
	code, err := parseCategory("land form", s, landFormNames)
	return LandForm(code), err
}

// ParseLandCover accepts a category name (case-insensitive) or its numeric code.
func ParseLandCover(s string) (LandCover, error) {
	code, err := parseCategory("land cover", s, landCoverNames)
	return LandCover(code), err
}

func parseCategory(kind, s string, names []string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, kind)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(names) {
			return 0, fmt.Errorf("%w: %s code %d outside 1..%d", ErrInvalidInput, kind, n, len(names))
		}
		return n, nil
	}
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid %s %q (case-insensitive), valid options: %s",
		ErrInvalidInput, kind, s, strings.Join(sortedCopy(names), ", "))
}

func (f LandForm) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: land form code %d", ErrInvalidInput, int(f))
	}
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts either the category name or its numeric code.
func (f *LandForm) UnmarshalJSON(b []byte) error {
	s, err := categoryToken(b)
	if err != nil {
		return err
	}
	v, err := ParseLandForm(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (c LandCover) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: land cover code %d", ErrInvalidInput, int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either the category name or its numeric code.
func (c *LandCover) UnmarshalJSON(b []byte) error {
	s, err := categoryToken(b)
	if err != nil {
		return err
	}
	v, err := ParseLandCover(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func categoryToken(b []byte) (string, error) {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("%w: category must be a name or code, got %s", ErrInvalidInput, b)
	}
	return n.String(), nil
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
