// Package domain models catchment parameterisation for rainfall-runoff
// models.
//
// # Categories
//
// A subcatchment is described by two categorical codes:
//
//	land form   1..9   marshes_and_lowlands ... highest_mountains
//	land cover  1..14  permeable_areas ... marshes
//
// Both accept either the snake_case name (case-insensitive) or the numeric
// code, in JSON messages and on the command line.
//
// # Inference
//
// The fuzzy model maps the pair onto three outputs:
//
//	slope       [0, 60]   percent
//	impervious  [0, 100]  percent of area
//	catchment   [0, 100]  score along urban → suburban → rural → forests →
//	                      meadows → arable → mountains
//
// The catchment score is decoded back into its dominant label, which selects
// Manning's roughness, depression storage and the zero-storage share from the
// engineering defaults table.
//
// # Derived geometry
//
// Subcatchments are assumed square. Width is half the side length,
// √(area·10⁴)/2 metres, rounded to two decimals, as are the reported slope and
// imperviousness.
//
// # ID Generation
//
// Requests without an id take the Kafka message key, and failing that a
// SHA-256 of land form|land cover|area. Replays therefore upsert the same row
// in the results store.
package domain
