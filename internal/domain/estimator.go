package domain

// Estimate holds the three crisp parameters inferred for one land form and
// land cover pair.
type Estimate struct {
	Slope      float64 `json:"slope_pct"`
	Impervious float64 `json:"impervious_pct"`
	Catchment  float64 `json:"catchment_score"`
}

// Estimator derives catchment parameters from terrain categories.
type Estimator interface {
	// ComputeAll infers slope, impervious fraction and catchment score.
	ComputeAll(form LandForm, cover LandCover) (Estimate, error)

	// DecodeLabel names the output term that best describes value.
	DecodeLabel(output string, value float64) (string, error)
}
