package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
)

// ParseRequest deserializes and validates a request from a RawEvent. A request
// without an id falls back to the message key, then to a content hash.
func ParseRequest(raw RawEvent) (SubcatchmentRequest, error) {
	var req SubcatchmentRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return SubcatchmentRequest{}, fmt.Errorf("%w: parse request: %w", ErrInvalidRequest, err)
	}
	if req.ID == "" && len(raw.Key) > 0 {
		req.ID = string(raw.Key)
	}
	if err := req.Validate(); err != nil {
		return SubcatchmentRequest{}, err
	}
	if req.ID == "" {
		req.ID = generateID(req)
	}
	return req, nil
}

// Validate checks the area bounds and both category codes.
func (r SubcatchmentRequest) Validate() error {
	if math.IsNaN(r.AreaHa) || r.AreaHa <= 0 {
		return fmt.Errorf("%w: area must be positive, got %g", ErrInvalidInput, r.AreaHa)
	}
	if r.AreaHa > MaxAreaHa {
		return fmt.Errorf("%w: area %g ha exceeds %d ha", ErrInvalidInput, r.AreaHa, MaxAreaHa)
	}
	if !r.LandForm.Valid() {
		return fmt.Errorf("%w: land form is required", ErrInvalidInput)
	}
	if !r.LandCover.Valid() {
		return fmt.Errorf("%w: land cover is required", ErrInvalidInput)
	}
	return nil
}

// BuildSubcatchment runs the estimator for the request and attaches the
// engineering defaults selected by the decoded catchment type.
func BuildSubcatchment(est Estimator, req SubcatchmentRequest) (Subcatchment, error) {
	if err := req.Validate(); err != nil {
		return Subcatchment{}, err
	}
	e, err := est.ComputeAll(req.LandForm, req.LandCover)
	if err != nil {
		return Subcatchment{}, err
	}
	catchmentType, err := est.DecodeLabel(VarCatchment, e.Catchment)
	if err != nil {
		return Subcatchment{}, err
	}
	subarea, err := SubareaFor(catchmentType)
	if err != nil {
		return Subcatchment{}, err
	}

	return Subcatchment{
		ID:            req.ID,
		AreaHa:        req.AreaHa,
		LandForm:      req.LandForm,
		LandCover:     req.LandCover,
		Estimate:      e,
		PercImperv:    round2(e.Impervious),
		PercSlope:     round2(e.Slope),
		Width:         Width(req.AreaHa),
		CatchmentType: catchmentType,
		Subarea:       subarea,
		Infiltration:  DefaultInfiltration,
		ProcessedAt:   clock.Now().UTC(),
	}, nil
}

// generateID produces a deterministic ID from the request's fields so
// replaying a message upserts the same row downstream.
func generateID(r SubcatchmentRequest) string {
	input := fmt.Sprintf("%d|%d|%.4f", int(r.LandForm), int(r.LandCover), r.AreaHa)
	hash := sha256.Sum256([]byte(input))
	return "sc-" + hex.EncodeToString(hash[:8])
}
