package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SubcatchmentRequest asks for the hydrological parameters of one
// subcatchment. Land form and land cover accept either names or codes.
type SubcatchmentRequest struct {
	ID        string    `json:"id,omitempty"`
	AreaHa    float64   `json:"area_ha"`
	LandForm  LandForm  `json:"land_form"`
	LandCover LandCover `json:"land_cover"`
}

// Subarea holds surface roughness and depression storage for the pervious and
// impervious parts of a subcatchment.
type Subarea struct {
	NImperv float64 `json:"n_imperv"`
	NPerv   float64 `json:"n_perv"`
	SImperv float64 `json:"s_imperv_mm"`
	SPerv   float64 `json:"s_perv_mm"`
	PctZero float64 `json:"pct_zero"`
	RouteTo string  `json:"route_to"`
}

// Infiltration holds the infiltration model parameters (Horton/Green-Ampt
// style, five positional values).
type Infiltration struct {
	Suction float64 `json:"suction"`
	Ksat    float64 `json:"ksat"`
	IMD     float64 `json:"imd"`
	Param4  float64 `json:"param4"`
	Param5  float64 `json:"param5"`
}

// Subcatchment is the fully parameterised subcatchment produced for a request.
type Subcatchment struct {
	ID            string       `json:"id"`
	AreaHa        float64      `json:"area_ha"`
	LandForm      LandForm     `json:"land_form"`
	LandCover     LandCover    `json:"land_cover"`
	Estimate      Estimate     `json:"estimate"`
	PercImperv    float64      `json:"perc_imperv"`
	PercSlope     float64      `json:"perc_slope"`
	Width         float64      `json:"width_m"`
	CatchmentType string       `json:"catchment_type"`
	Subarea       Subarea      `json:"subarea"`
	Infiltration  Infiltration `json:"infiltration"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}
