package domain

import (
	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
)

// ruleDef is one row of the built-in rule bank: when land cover and land form
// match, assign the three output labels.
type ruleDef struct {
	id         string
	cover      LandCover
	form       LandForm
	slope      string
	impervious string
	catchment  string
}

// defaultRules covers every land cover / land form pair. The mountains_vegetated
// on hills_and_outcrops_of_mountain_ranges pair is defined twice with different
// slope labels; Lint reports it and inference aggregates both.
var defaultRules = []ruleDef{
	{"mountains_vegetated_on_marshes", MountainsVegetated, MarshesAndLowlands, "flats_and_plateaus", "mountains_vegetated", "meadows"},
	{"mountains_rocky_on_marshes", MountainsRocky, MarshesAndLowlands, "flats_and_plateaus", "mountains_vegetated", "meadows"},
	{"steep_terrain_marshes_mountains", Marshes, Mountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_marshes_highest_mountains", Marshes, HighestMountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_permeable_areas_mountains", PermeableAreas, Mountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_permeable_areas_highest_mountains", PermeableAreas, HighestMountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_permeable_areas_higher_hills", PermeableAreas, HigherHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_permeable_terrain_on_plains_higher_hills", PermeableTerrainOnPlains, HigherHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_permeable_terrain_on_plains_mountains", PermeableTerrainOnPlains, Mountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_permeable_terrain_on_plains_highest_mountains", PermeableTerrainOnPlains, HighestMountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_forests_higher_hills", Forests, HigherHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_forests_mountains", Forests, Mountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_forests_highest_mountains", Forests, HighestMountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_meadows_hills_and_outcrops_of_mountain_ranges", Meadows, HillsAndOutcrops, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_meadows_higher_hills", Meadows, HigherHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_meadows_mountains", Meadows, Mountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_meadows_highest_mountains", Meadows, HighestMountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_arable_higher_hills", Arable, HigherHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_arable_mountains", Arable, Mountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_arable_highest_mountains", Arable, HighestMountains, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"steep_terrain_marshes_higher_hills", Marshes, HigherHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_on_flats_and_plateaus", MountainsVegetated, FlatsAndPlateaus, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_on_flats_and_plateaus_in_combination_with_hills", MountainsVegetated, FlatsAndPlateausWithHills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_on_hills_and_outcrops_of_mountain_ranges", MountainsVegetated, HillsAndOutcrops, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_on_hills_with_gentle_slopes", MountainsVegetated, HillsWithGentleSlopes, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_on_steeper_hills_and_foothills", MountainsVegetated, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_on_hills_outcrops", MountainsVegetated, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "mountains_vegetated", "mountains"},
	{"mountains_vegetated_high_higher_hills", MountainsVegetated, HigherHills, "higher_hills", "mountains_rocky", "mountains"},
	{"mountains_vegetated_high_mountains", MountainsVegetated, Mountains, "higher_hills", "mountains_rocky", "mountains"},
	{"mountains_vegetated_high_highest_mountains", MountainsVegetated, HighestMountains, "higher_hills", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_flats", MountainsRocky, FlatsAndPlateaus, "flats_and_plateaus", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_combo_hills", MountainsRocky, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_gentle_slopes", MountainsRocky, HillsWithGentleSlopes, "hills_with_gentle_slopes", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_steeper_hills", MountainsRocky, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_hills_outcrops", MountainsRocky, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_higher_hills", MountainsRocky, HigherHills, "higher_hills", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_mountains", MountainsRocky, Mountains, "mountains", "mountains_rocky", "mountains"},
	{"mountains_rocky_on_highest_mountains", MountainsRocky, HighestMountains, "mountains", "mountains_rocky", "mountains"},
	{"urban_weak_on_marshes_and_lowlands", UrbanWeaklyImpervious, MarshesAndLowlands, "marshes_and_lowlands", "urban_weakly_impervious", "urban"},
	{"urban_weak_on_flats_and_plateaus", UrbanWeaklyImpervious, FlatsAndPlateaus, "marshes_and_lowlands", "urban_weakly_impervious", "urban"},
	{"urban_weak_moderate_flats_and_plateaus_in_combination_with_hills", UrbanWeaklyImpervious, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "urban_weakly_impervious", "urban"},
	{"urban_weak_moderate_hills_with_gentle_slopes", UrbanWeaklyImpervious, HillsWithGentleSlopes, "flats_and_plateaus_in_combination_with_hills", "urban_weakly_impervious", "urban"},
	{"urban_weak_steep_steeper_hills_and_foothills", UrbanWeaklyImpervious, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "urban_highly_impervious", "urban"},
	{"urban_weak_steep_hills_and_outcrops_of_mountain_ranges", UrbanWeaklyImpervious, HillsAndOutcrops, "steeper_hills_and_foothills", "urban_highly_impervious", "urban"},
	{"urban_weak_high_higher_hills", UrbanWeaklyImpervious, HigherHills, "higher_hills", "urban_moderately_impervious", "urban"},
	{"urban_weak_high_mountains", UrbanWeaklyImpervious, Mountains, "higher_hills", "urban_moderately_impervious", "urban"},
	{"urban_weak_high_highest_mountains", UrbanWeaklyImpervious, HighestMountains, "higher_hills", "urban_moderately_impervious", "urban"},
	{"urban_moderate_low_marshes_and_lowlands", UrbanModeratelyImpervious, MarshesAndLowlands, "marshes_and_lowlands", "urban_moderately_impervious", "urban"},
	{"urban_moderate_low_flats_and_plateaus", UrbanModeratelyImpervious, FlatsAndPlateaus, "marshes_and_lowlands", "urban_moderately_impervious", "urban"},
	{"urban_moderate_terrain_flats_and_plateaus_in_combination_with_hills", UrbanModeratelyImpervious, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "urban_moderately_impervious", "urban"},
	{"urban_moderate_terrain_hills_with_gentle_slopes", UrbanModeratelyImpervious, HillsWithGentleSlopes, "flats_and_plateaus_in_combination_with_hills", "urban_moderately_impervious", "urban"},
	{"urban_moderate_terrain_steeper_hills_and_foothills", UrbanModeratelyImpervious, SteeperHillsAndFoothills, "flats_and_plateaus_in_combination_with_hills", "urban_moderately_impervious", "urban"},
	{"urban_moderate_high_hills_and_outcrops_of_mountain_ranges", UrbanModeratelyImpervious, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "urban_moderately_impervious", "urban"},
	{"urban_moderate_high_higher_hills", UrbanModeratelyImpervious, HigherHills, "hills_and_outcrops_of_mountain_ranges", "urban_moderately_impervious", "urban"},
	{"urban_moderate_high_mountains", UrbanModeratelyImpervious, Mountains, "hills_and_outcrops_of_mountain_ranges", "urban_moderately_impervious", "urban"},
	{"urban_moderate_high_highest_mountains", UrbanModeratelyImpervious, HighestMountains, "hills_and_outcrops_of_mountain_ranges", "urban_moderately_impervious", "urban"},
	{"urban_highly_on_marshes", UrbanHighlyImpervious, MarshesAndLowlands, "marshes_and_lowlands", "urban_highly_impervious", "urban"},
	{"rural_on_marshes_and_lowlands", Rural, MarshesAndLowlands, "marshes_and_lowlands", "rural", "rural"},
	{"rural_on_flats_and_plateaus", Rural, FlatsAndPlateaus, "flats_and_plateaus", "rural", "rural"},
	{"rural_on_flats_and_plateaus_in_combination_with_hills", Rural, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "rural", "rural"},
	{"rural_on_hills_with_gentle_slopes", Rural, HillsWithGentleSlopes, "hills_with_gentle_slopes", "rural", "rural"},
	{"rural_on_steeper_hills_and_foothills", Rural, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "rural", "rural"},
	{"rural_on_hills_and_outcrops_of_mountain_ranges", Rural, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "rural", "rural"},
	{"rural_on_higher_hills", Rural, HigherHills, "higher_hills", "rural", "rural"},
	{"rural_on_mountains", Rural, Mountains, "mountains", "rural", "rural"},
	{"rural_on_highest_mountains", Rural, HighestMountains, "highest_mountains", "rural", "rural"},
	{"forests_low_marshes_and_lowlands", Forests, MarshesAndLowlands, "flats_and_plateaus", "forests", "forests"},
	{"forests_low_flats_and_plateaus", Forests, FlatsAndPlateaus, "flats_and_plateaus", "forests", "forests"},
	{"forests_moderate_flats_and_plateaus_in_combination_with_hills", Forests, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "forests", "forests"},
	{"forests_moderate_hills_with_gentle_slopes", Forests, HillsWithGentleSlopes, "flats_and_plateaus_in_combination_with_hills", "forests", "forests"},
	{"forests_steep_steeper_hills_and_foothills", Forests, SteeperHillsAndFoothills, "hills_and_outcrops_of_mountain_ranges", "forests", "forests"},
	{"forests_steep_hills_and_outcrops_of_mountain_ranges", Forests, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "forests", "forests"},
	{"marshes_low_marshes_and_lowlands", Marshes, MarshesAndLowlands, "marshes_and_lowlands", "marshes", "meadows"},
	{"marshes_low_flats_and_plateaus", Marshes, FlatsAndPlateaus, "marshes_and_lowlands", "marshes", "meadows"},
	{"marshes_low_flats_and_plateaus_in_combination_with_hills", Marshes, FlatsAndPlateausWithHills, "marshes_and_lowlands", "marshes", "meadows"},
	{"marshes_hilly_hills_with_gentle_slopes", Marshes, HillsWithGentleSlopes, "marshes_and_lowlands", "meadows", "meadows"},
	{"marshes_hilly_steeper_hills_and_foothills", Marshes, SteeperHillsAndFoothills, "marshes_and_lowlands", "meadows", "meadows"},
	{"marshes_hilly_hills_and_outcrops_of_mountain_ranges", Marshes, HillsAndOutcrops, "marshes_and_lowlands", "meadows", "meadows"},
	{"meadows_on_marshes", Meadows, MarshesAndLowlands, "marshes_and_lowlands", "meadows", "meadows"},
	{"meadows_flat_flats_and_plateaus", Meadows, FlatsAndPlateaus, "flats_and_plateaus", "meadows", "meadows"},
	{"meadows_flat_flats_and_plateaus_in_combination_with_hills", Meadows, FlatsAndPlateausWithHills, "flats_and_plateaus", "meadows", "meadows"},
	{"meadows_hilly_hills_with_gentle_slopes", Meadows, HillsWithGentleSlopes, "hills_with_gentle_slopes", "meadows", "meadows"},
	{"meadows_hilly_steeper_hills_and_foothills", Meadows, SteeperHillsAndFoothills, "hills_with_gentle_slopes", "meadows", "meadows"},
	{"arable_on_marshes", Arable, MarshesAndLowlands, "flats_and_plateaus", "meadows", "meadows"},
	{"arable_moderate_flats_and_plateaus", Arable, FlatsAndPlateaus, "flats_and_plateaus_in_combination_with_hills", "arable", "arable"},
	{"arable_moderate_flats_and_plateaus_in_combination_with_hills", Arable, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "arable", "arable"},
	{"arable_moderate_hills_with_gentle_slopes", Arable, HillsWithGentleSlopes, "flats_and_plateaus_in_combination_with_hills", "arable", "arable"},
	{"arable_steep_steeper_hills_and_foothills", Arable, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "arable", "arable"},
	{"arable_steep_hills_and_outcrops_of_mountain_ranges", Arable, HillsAndOutcrops, "steeper_hills_and_foothills", "arable", "arable"},
	{"urban_highly_on_flats_special", UrbanHighlyImpervious, FlatsAndPlateaus, "flats_and_plateaus", "urban_highly_impervious", "mountains"},
	{"urban_highly_gentle_hills_with_gentle_slopes", UrbanHighlyImpervious, HillsWithGentleSlopes, "hills_with_gentle_slopes", "urban_highly_impervious", "urban"},
	{"urban_highly_gentle_steeper_hills_and_foothills", UrbanHighlyImpervious, SteeperHillsAndFoothills, "hills_with_gentle_slopes", "urban_highly_impervious", "urban"},
	{"urban_highly_gentle_hills_and_outcrops_of_mountain_ranges", UrbanHighlyImpervious, HillsAndOutcrops, "hills_with_gentle_slopes", "urban_highly_impervious", "urban"},
	{"urban_highly_high_higher_hills", UrbanHighlyImpervious, HigherHills, "mountains", "urban_highly_impervious", "urban"},
	{"urban_highly_high_mountains", UrbanHighlyImpervious, Mountains, "mountains", "urban_highly_impervious", "urban"},
	{"urban_highly_high_highest_mountains", UrbanHighlyImpervious, HighestMountains, "mountains", "urban_highly_impervious", "urban"},
	{"permeable_areas_on_marshes", PermeableAreas, MarshesAndLowlands, "marshes_and_lowlands", "marshes", "meadows"},
	{"permeable_terrain_on_plains_on_marshes", PermeableTerrainOnPlains, MarshesAndLowlands, "marshes_and_lowlands", "marshes", "meadows"},
	{"permeable_areas_on_flats", PermeableAreas, FlatsAndPlateaus, "flats_and_plateaus", "meadows", "meadows"},
	{"permeable_terrain_on_plains_on_flats", PermeableTerrainOnPlains, FlatsAndPlateaus, "flats_and_plateaus", "meadows", "meadows"},
	{"permeable_areas_on_combo_hills", PermeableAreas, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "arable", "meadows"},
	{"permeable_terrain_on_plains_on_combo_hills", PermeableTerrainOnPlains, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "arable", "meadows"},
	{"permeable_areas_on_gentle_slopes", PermeableAreas, HillsWithGentleSlopes, "hills_with_gentle_slopes", "arable", "arable"},
	{"permeable_terrain_on_plains_on_gentle_slopes", PermeableTerrainOnPlains, HillsWithGentleSlopes, "hills_with_gentle_slopes", "arable", "arable"},
	{"permeable_areas_on_steeper_hills", PermeableAreas, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "arable", "arable"},
	{"permeable_terrain_on_plains_on_steeper_hills", PermeableTerrainOnPlains, SteeperHillsAndFoothills, "steeper_hills_and_foothills", "arable", "arable"},
	{"permeable_areas_on_hills_outcrops", PermeableAreas, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "arable", "arable"},
	{"permeable_terrain_on_plains_on_hills_outcrops", PermeableTerrainOnPlains, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "arable", "arable"},
	{"suburban_weak_on_marshes", SuburbanWeaklyImpervious, MarshesAndLowlands, "marshes_and_lowlands", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_flat_flats_and_plateaus", SuburbanWeaklyImpervious, FlatsAndPlateaus, "flats_and_plateaus", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_flat_flats_and_plateaus_in_combination_with_hills", SuburbanWeaklyImpervious, FlatsAndPlateausWithHills, "flats_and_plateaus", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_hilly_hills_with_gentle_slopes", SuburbanWeaklyImpervious, HillsWithGentleSlopes, "hills_with_gentle_slopes", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_hilly_steeper_hills_and_foothills", SuburbanWeaklyImpervious, SteeperHillsAndFoothills, "hills_with_gentle_slopes", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_on_outcrops", SuburbanWeaklyImpervious, HillsAndOutcrops, "hills_and_outcrops_of_mountain_ranges", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_high_higher_hills", SuburbanWeaklyImpervious, HigherHills, "higher_hills", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_high_mountains", SuburbanWeaklyImpervious, Mountains, "higher_hills", "suburban_weakly_impervious", "suburban"},
	{"suburban_weak_high_highest_mountains", SuburbanWeaklyImpervious, HighestMountains, "higher_hills", "suburban_weakly_impervious", "suburban"},
	{"suburban_highly_low_marshes_and_lowlands", SuburbanHighlyImpervious, MarshesAndLowlands, "marshes_and_lowlands", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_low_flats_and_plateaus", SuburbanHighlyImpervious, FlatsAndPlateaus, "marshes_and_lowlands", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_on_combo_hills", SuburbanHighlyImpervious, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_hilly_hills_with_gentle_slopes", SuburbanHighlyImpervious, HillsWithGentleSlopes, "hills_with_gentle_slopes", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_hilly_steeper_hills_and_foothills", SuburbanHighlyImpervious, SteeperHillsAndFoothills, "hills_with_gentle_slopes", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_hilly_hills_and_outcrops_of_mountain_ranges", SuburbanHighlyImpervious, HillsAndOutcrops, "hills_with_gentle_slopes", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_high_higher_hills", SuburbanHighlyImpervious, HigherHills, "higher_hills", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_high_mountains", SuburbanHighlyImpervious, Mountains, "higher_hills", "suburban_highly_impervious", "suburban"},
	{"suburban_highly_high_highest_mountains", SuburbanHighlyImpervious, HighestMountains, "higher_hills", "suburban_highly_impervious", "suburban"},
	{"urban_highly_on_combo_hills", UrbanHighlyImpervious, FlatsAndPlateausWithHills, "flats_and_plateaus_in_combination_with_hills", "urban_highly_impervious", "urban"},
}

// DefaultRuleBank builds the built-in rule bank against reg, which must carry
// the default variable names and labels.
func DefaultRuleBank(reg *fuzzy.Registry) (*fuzzy.RuleBank, error) {
	rules := make([]*fuzzy.Rule, 0, len(defaultRules))
	for _, d := range defaultRules {
		r, err := fuzzy.NewRuleBuilder(reg, d.id).
			When(VarLandCover, d.cover.String()).
			When(VarLandForm, d.form.String()).
			Then(VarSlope, d.slope).
			Then(VarImpervious, d.impervious).
			Then(VarCatchment, d.catchment).
			Build()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return fuzzy.NewRuleBank(reg, rules...)
}
