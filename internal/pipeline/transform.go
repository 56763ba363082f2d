package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
)

// CatchmentTransformer implements Transformer by decoding a subcatchment
// request and running it through an Estimator.
type CatchmentTransformer struct {
	estimator domain.Estimator
	logger    *slog.Logger
}

// NewTransformer creates a CatchmentTransformer over the given estimator.
func NewTransformer(estimator domain.Estimator, logger *slog.Logger) *CatchmentTransformer {
	return &CatchmentTransformer{
		estimator: estimator,
		logger:    logger,
	}
}

func (t *CatchmentTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.Subcatchment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subcatchment{}, err
	}

	req, err := domain.ParseRequest(raw)
	if err != nil {
		return domain.Subcatchment{}, err
	}

	sc, err := domain.BuildSubcatchment(t.estimator, req)
	if err != nil {
		return domain.Subcatchment{}, err
	}
	sc.RawPayload = raw.Value

	t.logger.Debug("subcatchment computed",
		"subcatchment_id", sc.ID,
		"land_form", sc.LandForm.String(),
		"land_cover", sc.LandCover.String(),
		"catchment_type", sc.CatchmentType,
	)
	return sc, nil
}
