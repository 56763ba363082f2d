package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
)

const (
	maxRequestBytes = 1 << 20
	defaultRecent   = 20
	maxRecent       = 500
)

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"land_form":  domain.LandFormNames(),
		"land_cover": domain.LandCoverNames(),
	})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	req, err := domain.ParseRequest(domain.RawEvent{Value: body})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	sc, err := domain.BuildSubcatchment(s.estimator, req)
	if err != nil {
		s.logger.Warn("compute failed", "error", err, "subcatchment_id", req.ID)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	output := q.Get("output")
	value, err := strconv.ParseFloat(q.Get("value"), 64)
	if output == "" || err != nil {
		writeError(w, http.StatusBadRequest, errors.New("output and numeric value are required"))
		return
	}

	label, err := s.estimator.DecodeLabel(output, value)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"output": output,
		"value":  value,
		"label":  label,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sc, err := s.results.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecent
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRecent {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be between 1 and %d", maxRecent))
			return
		}
		limit = n
	}

	results, err := s.results.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("list recent subcatchments failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoApplicableRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, fuzzy.ErrUnknownVariable),
		errors.Is(err, fuzzy.ErrEmptyVariable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
