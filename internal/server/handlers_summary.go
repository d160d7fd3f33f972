package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/jonathan/resume-builder/internal/types"
)

// SummaryResponse is returned after a summary is generated and saved
type SummaryResponse struct {
	ProfessionalSummary string         `json:"professionalSummary"`
	CV                  types.CvRecord `json:"cv"`
}

// MissingFieldsResponse lists what must be filled in before a summary can be generated
type MissingFieldsResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

// handleGenerateSummary validates the caller's CV, asks the model for a
// summary and saves it. The stored summary is untouched on any failure.
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	if s.summaries == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "AI summary"}, "AI summary unavailable")
		return
	}
	cv, ok := s.loadCV(w, r)
	if !ok {
		return
	}

	text, err := s.summaries.Generate(r.Context(), cv)
	s.metrics.summaries.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		var missingErr *summary.MissingFieldsError
		if errors.As(err, &missingErr) {
			s.jsonResponse(w, http.StatusUnprocessableEntity, MissingFieldsResponse{
				Error:   summary.GateMessage,
				Missing: missingErr.Fields,
			})
			return
		}
		s.handleError(w, r, err, "Failed to generate summary")
		return
	}

	saved, err := s.repo.Save(r.Context(), callerUID(r), summary.Apply(cv, text))
	if err != nil {
		s.handleError(w, r, err, "Failed to save CV")
		return
	}
	s.jsonResponse(w, http.StatusOK, SummaryResponse{ProfessionalSummary: text, CV: saved})
}
